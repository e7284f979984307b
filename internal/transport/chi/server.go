package chi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iris-research/iris/internal/domain"
	domsearch "github.com/iris-research/iris/internal/domain/search"
	healthuc "github.com/iris-research/iris/internal/usecase/health"
	searchuc "github.com/iris-research/iris/internal/usecase/search"
	"github.com/iris-research/iris/internal/version"
)

const serviceName = "iris-search-api"

// Server exposes the search and corpus endpoints over HTTP.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidWeights, http.StatusBadRequest, CodeInvalidWeights),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrCorpusNotReady, http.StatusServiceUnavailable, CodeCorpusNotReady),
		sentinelHandler(domain.ErrRetrievalUnavailable, http.StatusBadGateway, CodeRetrievalUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeRetrievalUnavailable),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.Health)
	r.Get("/search", s.Search)
	r.Get("/name", s.SearchByName)
	r.Get("/top", s.Top)
	r.Get("/stats", s.Stats)
	r.Get("/researcher/{id}", s.GetResearcher)
}

// Root handles GET / with basic service metadata.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ServiceInfo{
		Service:          serviceName,
		Version:          version.Version,
		Status:           "running",
		TotalResearchers: s.search.TotalIndexed(),
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToDTO(report))
}

// Search handles GET /search: semantic search blended with metric weights.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := optionalInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be an integer")
		return
	}
	minHIndex, err := optionalInt(q.Get("min_h_index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "min_h_index must be an integer")
		return
	}
	hWeight, err := optionalFloat(q.Get("h_weight"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "h_weight must be a number")
		return
	}
	citationWeight, err := optionalFloat(q.Get("citation_weight"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "citation_weight must be a number")
		return
	}

	req, err := domsearch.NewRequest(
		strings.TrimSpace(q.Get("q")),
		limit, minHIndex,
		q.Get("institution"),
		hWeight, citationWeight,
	)
	if errors.Is(err, domain.ErrInvalidWeights) {
		s.handleDomainError(w, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchToDTO(resp))
}

// SearchByName handles GET /name: exact token containment over names.
func (s *Server) SearchByName(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "query parameter q is required")
		return
	}
	limit, err := optionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be an integer")
		return
	}

	records, err := s.search.ByName(r.Context(), q, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NameSearchResponse{
		Query:   q,
		Count:   len(records),
		Results: records,
	})
}

// Top handles GET /top: researchers ranked by h-index with optional filters.
func (s *Server) Top(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := optionalInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be an integer")
		return
	}

	records, total, err := s.search.Top(r.Context(), limit, q.Get("institution"), q.Get("field"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TopResponse{
		TotalMatched: total,
		Researchers:  records,
	})
}

// Stats handles GET /stats: corpus-wide aggregates.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.search.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetResearcher handles GET /researcher/{id}: full record lookup.
func (s *Server) GetResearcher(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "researcher id must be an integer")
		return
	}

	rec, err := s.search.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// optionalInt parses an optional integer query parameter. Empty means 0.
func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// optionalFloat parses an optional float query parameter. Empty means unset.
func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
