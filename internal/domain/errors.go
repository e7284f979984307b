package domain

import "errors"

var (
	// ErrNotFound signals a missing researcher record.
	ErrNotFound = errors.New("researcher not found")
	// ErrCorpusNotReady signals that no corpus snapshot has been loaded yet.
	ErrCorpusNotReady = errors.New("corpus not ready")
	// ErrInvalidWeights signals ranking weights that are negative or sum past 1.
	ErrInvalidWeights = errors.New("invalid ranking weights")
	// ErrRetrievalUnavailable signals a failed vector index or embedding call.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
