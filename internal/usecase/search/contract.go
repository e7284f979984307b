package search

import (
	"context"

	"github.com/iris-research/iris/internal/corpus"
	"github.com/iris-research/iris/internal/domain"
	"github.com/iris-research/iris/internal/index"
)

// Retriever fetches nearest-neighbor candidates from the external vector index.
type Retriever interface {
	Search(ctx context.Context, vector []float32, k int) ([]index.Candidate, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// CorpusReader exposes the current fused-corpus generation.
type CorpusReader interface {
	Snapshot() (*corpus.Snapshot, error)
}
