// Package search orchestrates ranked researcher retrieval: fetch an
// over-sized candidate set from the vector index, apply hard filters,
// score with the weighted ranking formula, sort and truncate.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iris-research/iris/internal/corpus"
	"github.com/iris-research/iris/internal/domain"
	"github.com/iris-research/iris/internal/domain/researcher"
	domsearch "github.com/iris-research/iris/internal/domain/search"
	"github.com/iris-research/iris/internal/metrics"
	"github.com/iris-research/iris/internal/ranking"
)

// Service handles researcher retrieval over the read-only fused corpus.
// It holds no mutable state of its own; concurrent queries need no
// coordination and an abandoned query has nothing to roll back.
type Service struct {
	retriever Retriever
	embed     Embedder
	corpus    CorpusReader
}

// New creates a search service.
func New(retriever Retriever, embed Embedder, corpus CorpusReader) *Service {
	return &Service{retriever: retriever, embed: embed, corpus: corpus}
}

// candidate pairs a corpus record with its query-time scores.
type candidate struct {
	record     *researcher.Record
	similarity float64
	weighted   float64
}

// Search runs the query pipeline: embed → fetch candidates → filter →
// rank → respond. Index or embedding failures surface as
// domain.ErrRetrievalUnavailable; a short or empty candidate set is not an
// error and yields however many results survive.
func (s *Service) Search(ctx context.Context, req *domsearch.Request) (domsearch.Response, error) {
	start := time.Now()

	snap, err := s.corpus.Snapshot()
	if err != nil {
		return domsearch.Response{}, fmt.Errorf("corpus snapshot: %w", err)
	}

	// Fetching
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return domsearch.Response{}, fmt.Errorf("embed query: %w: %w", domain.ErrRetrievalUnavailable, err)
	}

	hits, err := s.retriever.Search(ctx, embResult.Embedding, req.FetchK())
	if err != nil {
		return domsearch.Response{}, fmt.Errorf("index search: %w: %w", domain.ErrRetrievalUnavailable, err)
	}
	metrics.SearchCandidatesFetched.Observe(float64(len(hits)))

	// Filtering: pure predicate pass, order-preserving. Ids unknown to the
	// current snapshot are skipped (the index may lag a generation).
	instFilter := strings.ToLower(req.Institution())
	candidates := make([]candidate, 0, len(hits))
	for _, hit := range hits {
		rec := snap.Get(hit.ID)
		if rec == nil {
			continue
		}
		if rec.Metrics.HIndex < req.MinHIndex() {
			continue
		}
		if instFilter != "" && !strings.Contains(strings.ToLower(rec.Institution), instFilter) {
			continue
		}
		candidates = append(candidates, candidate{
			record:     rec,
			similarity: ranking.NormalizeSimilarity(hit.Similarity),
		})
	}
	metrics.SearchCandidatesFiltered.Observe(float64(len(candidates)))

	// Ranking: normalization maxima come from the filtered candidate set
	// only, so scores are relative to what else matched this query.
	weights := ranking.Weights{H: req.HWeight(), Citation: req.CitationWeight()}
	var maxH, maxCitations int
	for _, c := range candidates {
		if c.record.Metrics.HIndex > maxH {
			maxH = c.record.Metrics.HIndex
		}
		if c.record.Metrics.TotalCitations > maxCitations {
			maxCitations = c.record.Metrics.TotalCitations
		}
	}
	for i := range candidates {
		candidates[i].weighted = ranking.Score(
			candidates[i].similarity, candidates[i].record.Metrics, maxH, maxCitations, weights,
		)
	}

	// Responding
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weighted > candidates[j].weighted
	})
	if len(candidates) > req.Limit() {
		candidates = candidates[:req.Limit()]
	}

	results := make([]domsearch.Result, len(candidates))
	for i, c := range candidates {
		results[i] = domsearch.Result{
			Rank:          i + 1,
			Record:        c.record,
			SemanticScore: c.similarity,
			WeightedScore: c.weighted,
		}
	}

	elapsed := time.Since(start)
	metrics.SearchDuration.Observe(elapsed.Seconds())

	return domsearch.Response{
		Query:        req.Query(),
		TotalIndexed: snap.Len(),
		Results:      results,
		SearchTimeMs: float64(elapsed.Microseconds()) / 1000,
	}, nil
}

// Get returns one researcher by corpus id.
func (s *Service) Get(_ context.Context, id int) (*researcher.Record, error) {
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("corpus snapshot: %w", err)
	}
	rec := snap.Get(id)
	if rec == nil {
		return nil, fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
	}
	return rec, nil
}

// ByName returns researchers whose name contains every whitespace term of
// q (case-insensitive), sorted by h-index descending.
func (s *Service) ByName(_ context.Context, q string, limit int) ([]*researcher.Record, error) {
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("corpus snapshot: %w", err)
	}
	if limit <= 0 {
		limit = domsearch.DefaultLimit
	}

	terms := strings.Fields(strings.ToLower(q))
	records := snap.Records()

	matches := make([]*researcher.Record, 0, limit)
	for i := range records {
		name := strings.ToLower(records[i].Name)
		if containsAll(name, terms) {
			matches = append(matches, &records[i])
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Metrics.HIndex > matches[j].Metrics.HIndex
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Top returns the highest-h-index researchers, optionally filtered by
// institution substring and by field/subfield substring.
func (s *Service) Top(_ context.Context, limit int, institution, field string) ([]*researcher.Record, int, error) {
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return nil, 0, fmt.Errorf("corpus snapshot: %w", err)
	}
	if limit <= 0 {
		limit = 50
	}

	instFilter := strings.ToLower(institution)
	fieldFilter := strings.ToLower(field)
	records := snap.Records()

	matched := make([]*researcher.Record, 0, len(records))
	for i := range records {
		r := &records[i]
		if instFilter != "" && !strings.Contains(strings.ToLower(r.Institution), instFilter) {
			continue
		}
		if fieldFilter != "" &&
			!strings.Contains(strings.ToLower(r.Field+" "+r.Subfield), fieldFilter) {
			continue
		}
		matched = append(matched, r)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Metrics.HIndex > matched[j].Metrics.HIndex
	})

	total := len(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// Stats summarizes the current corpus generation.
func (s *Service) Stats(_ context.Context) (corpus.Stats, error) {
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return corpus.Stats{}, fmt.Errorf("corpus snapshot: %w", err)
	}
	return snap.Stats(), nil
}

// TotalIndexed returns the size of the current generation (0 before the
// first snapshot loads).
func (s *Service) TotalIndexed() int {
	snap, err := s.corpus.Snapshot()
	if err != nil {
		return 0
	}
	return snap.Len()
}

func containsAll(s string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}
