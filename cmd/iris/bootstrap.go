package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iris-research/iris/internal/config"
	"github.com/iris-research/iris/internal/domain"
	indexredis "github.com/iris-research/iris/internal/index/redis"
	logpkg "github.com/iris-research/iris/internal/logger"
	openaiEmb "github.com/iris-research/iris/internal/transport/openai"
)

// bootstrap holds the dependencies shared by serve and ingest.
type bootstrap struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
	index  *indexredis.Index
}

// newBootstrap loads config, builds the logger and connects to the index.
func newBootstrap(ctx context.Context) (*bootstrap, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	idx, err := indexredis.New(indexredis.Config{
		Addrs:           cfg.Index.Addrs,
		Username:        cfg.Index.Username,
		Password:        cfg.Index.Password,
		DB:              cfg.Index.DB,
		KeyPrefix:       cfg.Index.KeyPrefix,
		HNSWM:           cfg.Index.HNSWM,
		HNSWEFConstruct: cfg.Index.HNSWEFConstruct,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("create vector index client: %w", err)
	}

	if err := idx.WaitForReady(ctx, time.Duration(cfg.Index.ReadinessTimeout)*time.Second); err != nil {
		idx.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("vector index not ready: %w", err)
	}
	logger.Info("Connected to vector index", zap.Strings("addrs", cfg.Index.Addrs))

	return &bootstrap{env: env, cfg: cfg, logger: logger, index: idx}, nil
}

func (b *bootstrap) close() {
	b.index.Close()
	_ = b.logger.Sync()
}

// newEmbedder builds the embedding chain. instruction is prepended to every
// text when non-empty (instruction-tuned models).
func (b *bootstrap) newEmbedder(instruction string) domain.Embedder {
	var embedder domain.Embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     b.cfg.Embedding.APIKey,
		BaseURL:    b.cfg.Embedding.BaseURL,
		Model:      b.cfg.Embedding.Model,
		Dimensions: b.cfg.Embedding.Dimensions,
		Provider:   b.cfg.Embedding.Provider,
		Logger:     b.logger,
	})
	if instruction != "" {
		embedder = domain.NewInstructionEmbedder(embedder, instruction)
	}
	return embedder
}
