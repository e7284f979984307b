// Package search defines the validated query request and result shapes
// for ranked researcher retrieval.
package search

import (
	"fmt"

	"github.com/iris-research/iris/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 100
	// MaxFetch caps the over-fetched candidate set per query.
	MaxFetch = 500
	// FetchFactor over-fetches candidates relative to limit so that hard
	// filters still leave enough to rank.
	FetchFactor = 10

	DefaultHWeight        = 0.3
	DefaultCitationWeight = 0.1
)

// Request is a validated researcher search query.
type Request struct {
	query          string
	limit          int
	minHIndex      int
	institution    string
	hWeight        float64
	citationWeight float64
}

// NewRequest validates and normalizes search parameters.
// Defaults: limit=20, hWeight=0.3, citationWeight=0.1. Negative weights or
// hWeight+citationWeight > 1 fail with domain.ErrInvalidWeights: a negative
// semantic weight would silently corrupt ranking.
func NewRequest(
	query string,
	limit, minHIndex int,
	institution string,
	hWeight, citationWeight *float64,
) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if minHIndex < 0 {
		minHIndex = 0
	}

	hw := DefaultHWeight
	if hWeight != nil {
		hw = *hWeight
	}
	cw := DefaultCitationWeight
	if citationWeight != nil {
		cw = *citationWeight
	}
	if hw < 0 || cw < 0 {
		return Request{}, fmt.Errorf("%w: weights must be non-negative", domain.ErrInvalidWeights)
	}
	if hw+cw > 1 {
		return Request{}, fmt.Errorf(
			"%w: h_weight + citation_weight must not exceed 1, got %.3f", domain.ErrInvalidWeights, hw+cw,
		)
	}

	return Request{
		query:          query,
		limit:          limit,
		minHIndex:      minHIndex,
		institution:    institution,
		hWeight:        hw,
		citationWeight: cw,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// MinHIndex returns the minimum h-index hard filter.
func (r *Request) MinHIndex() int { return r.minHIndex }

// Institution returns the affiliation substring filter ("" = none).
func (r *Request) Institution() string { return r.institution }

// HWeight returns the h-index ranking weight.
func (r *Request) HWeight() float64 { return r.hWeight }

// CitationWeight returns the citation ranking weight.
func (r *Request) CitationWeight() float64 { return r.citationWeight }

// FetchK returns the candidate count requested from the vector index:
// min(limit*FetchFactor, MaxFetch).
func (r *Request) FetchK() int {
	k := r.limit * FetchFactor
	if k > MaxFetch {
		k = MaxFetch
	}
	return k
}
