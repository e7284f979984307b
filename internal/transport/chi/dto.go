package chi

import (
	"github.com/iris-research/iris/internal/domain/researcher"
	domsearch "github.com/iris-research/iris/internal/domain/search"
	healthuc "github.com/iris-research/iris/internal/usecase/health"
)

// ServiceInfo is the GET / response.
type ServiceInfo struct {
	Service          string `json:"service"`
	Version          string `json:"version"`
	Status           string `json:"status"`
	TotalResearchers int    `json:"total_researchers"`
}

// HealthResponse is the GET /health response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SearchHit is one ranked researcher in a search response.
type SearchHit struct {
	Rank          int     `json:"rank"`
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Institution   string  `json:"institution"`
	Field         string  `json:"field,omitempty"`
	Subfield      string  `json:"subfield,omitempty"`
	HIndex        int     `json:"h_index"`
	Citations     int     `json:"citations"`
	WorksCount    int     `json:"works_count"`
	OpenAlexID    string  `json:"openalex_id,omitempty"`
	ORCID         string  `json:"orcid,omitempty"`
	SemanticScore float64 `json:"semantic_score"`
	WeightedScore float64 `json:"weighted_score"`
}

// SearchResponse is the GET /search response envelope.
type SearchResponse struct {
	Query        string      `json:"query"`
	TotalIndexed int         `json:"total_indexed"`
	Results      []SearchHit `json:"results"`
	SearchTimeMs float64     `json:"search_time_ms"`
}

// NameSearchResponse is the GET /name response envelope.
type NameSearchResponse struct {
	Query   string               `json:"query"`
	Count   int                  `json:"count"`
	Results []*researcher.Record `json:"results"`
}

// TopResponse is the GET /top response envelope.
type TopResponse struct {
	TotalMatched int                  `json:"total_matched"`
	Researchers  []*researcher.Record `json:"researchers"`
}

func searchToDTO(resp domsearch.Response) SearchResponse {
	hits := make([]SearchHit, 0, len(resp.Results))
	for _, res := range resp.Results {
		rec := res.Record
		hits = append(hits, SearchHit{
			Rank:          res.Rank,
			ID:            rec.ID,
			Name:          rec.Name,
			Institution:   rec.Institution,
			Field:         rec.Field,
			Subfield:      rec.Subfield,
			HIndex:        rec.Metrics.HIndex,
			Citations:     rec.Metrics.TotalCitations,
			WorksCount:    rec.PublicationCount(),
			OpenAlexID:    rec.OpenAlexID,
			ORCID:         rec.ORCID,
			SemanticScore: res.SemanticScore,
			WeightedScore: res.WeightedScore,
		})
	}
	return SearchResponse{
		Query:        resp.Query,
		TotalIndexed: resp.TotalIndexed,
		Results:      hits,
		SearchTimeMs: resp.SearchTimeMs,
	}
}

func healthToDTO(report healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	return HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	}
}
