// Package ingest builds a new corpus generation: it reads partial records
// from per-source adapter files, fuses records describing the same person,
// writes the fused snapshot, and populates the vector index.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iris-research/iris/internal/corpus"
	"github.com/iris-research/iris/internal/domain/researcher"
	"github.com/iris-research/iris/internal/fusion"
	"github.com/iris-research/iris/internal/metrics"
)

// Options configures an ingestion run.
type Options struct {
	// InstitutionKeywords gate affiliation verification (lowercase).
	InstitutionKeywords []string
	// Dimensions is the embedding dimensionality for the index schema.
	Dimensions int
	// EmbedWorkers bounds parallel embedding/upsert calls.
	EmbedWorkers int
	// EmbedModel is recorded in the snapshot metadata.
	EmbedModel string
	// SnapshotPath is where the fused corpus is written.
	SnapshotPath string
}

// Service runs ingestion.
type Service struct {
	embed  Embedder
	writer IndexWriter
	logger *zap.Logger
}

// New creates an ingest service.
func New(embed Embedder, writer IndexWriter, logger *zap.Logger) *Service {
	return &Service{embed: embed, writer: writer, logger: logger}
}

// Ingest executes a full run: read → fuse → snapshot → embed + index.
// Returns the published snapshot and the run stats.
func (s *Service) Ingest(ctx context.Context, sources []Source, opts Options) (*corpus.Snapshot, Stats, error) {
	run := NewRun()
	log := s.logger.With(zap.String("run_id", run.ID))

	log.Info("ingestion started", zap.Int("sources", len(sources)))

	records, err := s.fuse(run, sources, opts)
	if err != nil {
		return nil, run.Stats(), err
	}

	snap, err := s.publish(run, records, sources, opts)
	if err != nil {
		return nil, run.Stats(), err
	}

	if err := s.indexRecords(ctx, run, snap, opts); err != nil {
		return nil, run.Stats(), err
	}

	stats := run.Stats()
	log.Info("ingestion complete",
		zap.Int("researchers", snap.Len()),
		zap.Int64("records_read", stats.RecordsRead),
		zap.Int64("duplicates_merged", stats.DuplicatesMerged),
		zap.Int64("verified", stats.VerifiedRecords),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return snap, stats, nil
}

// fuse reads every source in parallel and merges partial records by
// identity key. Per-source files are read concurrently; the accumulator
// serializes merges per identity.
func (s *Service) fuse(run *Run, sources []Source, opts Options) ([]researcher.Record, error) {
	acc := fusion.NewAccumulator()

	var g errgroup.Group
	for _, src := range sources {
		src := src
		g.Go(func() error {
			n := 0
			err := ReadSource(src, opts.InstitutionKeywords, func(rec researcher.Record) {
				if acc.Apply(rec) {
					run.duplicatesMerged.Add(1)
					metrics.IngestDuplicatesCollapsed.Inc()
				}
				n++
			})
			if err != nil {
				return err
			}
			run.recordsRead.Add(int64(n))
			metrics.IngestRecordsTotal.WithLabelValues(src.Name).Add(float64(n))
			s.logger.Info("source read", zap.String("source", src.Name), zap.Int("records", n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	records := acc.Records()
	for i := range records {
		records[i].ID = i
		if records[i].Verified {
			run.verifiedRecords.Add(1)
		}
	}
	return records, nil
}

// publish writes the fused snapshot file for this generation.
func (s *Service) publish(run *Run, records []researcher.Record, sources []Source, opts Options) (*corpus.Snapshot, error) {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name
	}

	snap, err := corpus.NewSnapshot(corpus.Meta{
		Generation: run.ID,
		CreatedAt:  time.Now().UTC(),
		Sources:    names,
		EmbedModel: opts.EmbedModel,
	}, records)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	if opts.SnapshotPath != "" {
		if err := snap.Save(opts.SnapshotPath); err != nil {
			return nil, err
		}
		s.logger.Info("snapshot written",
			zap.String("path", opts.SnapshotPath), zap.Int("researchers", snap.Len()))
	}
	return snap, nil
}

// indexRecords embeds each record's profile text and upserts it into the
// vector index with bounded parallelism.
func (s *Service) indexRecords(ctx context.Context, run *Run, snap *corpus.Snapshot, opts Options) error {
	if s.writer == nil || s.embed == nil {
		return nil
	}

	if err := s.writer.EnsureIndex(ctx, opts.Dimensions); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	workers := opts.EmbedWorkers
	if workers <= 0 {
		workers = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	records := snap.Records()
	for i := range records {
		rec := &records[i]
		g.Go(func() error {
			embResult, err := s.embed.Embed(gctx, rec.EmbeddingText())
			if err != nil {
				return fmt.Errorf("embed record %d: %w", rec.ID, err)
			}
			run.embeddingsComputed.Add(1)

			fields := map[string]string{
				"name":        rec.Name,
				"institution": rec.Institution,
				"h_index":     strconv.Itoa(rec.Metrics.HIndex),
			}
			if err := s.writer.Upsert(gctx, rec.ID, embResult.Embedding, fields); err != nil {
				run.upsertFailures.Add(1)
				return fmt.Errorf("upsert record %d: %w", rec.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("index records: %w", err)
	}
	return nil
}
