package ingest

import (
	"context"

	"github.com/iris-research/iris/internal/domain"
)

// Embedder vectorizes researcher profile text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// IndexWriter maintains the vector index for the new corpus generation.
type IndexWriter interface {
	EnsureIndex(ctx context.Context, dimensions int) error
	Upsert(ctx context.Context, id int, vector []float32, fields map[string]string) error
}
