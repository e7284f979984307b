// Package index defines the consumed vector-index contract. The engine
// treats the approximate-nearest-neighbor implementation as an opaque
// external service: it only issues KNN queries and, at ingestion time,
// vector upserts.
package index

import "context"

// Candidate is one nearest-neighbor hit: a corpus record id and its
// similarity. Similarity is backend-reported and may need normalization
// into [0,1] before scoring.
type Candidate struct {
	ID         int
	Similarity float64
}

// Searcher issues KNN queries against the index.
type Searcher interface {
	// Search returns up to k nearest candidates for the query embedding.
	// Returning fewer than k (or none) is not an error.
	Search(ctx context.Context, vector []float32, k int) ([]Candidate, error)
}

// Writer maintains the index at ingestion time.
type Writer interface {
	// EnsureIndex creates the vector index for the given dimensionality if
	// it does not exist yet.
	EnsureIndex(ctx context.Context, dimensions int) error
	// Upsert writes one record's embedding. Fields are indexed alongside
	// the vector for debugging, not consumed by search.
	Upsert(ctx context.Context, id int, vector []float32, fields map[string]string) error
}

// Store is the full index surface used by the ingest pipeline.
type Store interface {
	Searcher
	Writer
	Ping(ctx context.Context) error
}
