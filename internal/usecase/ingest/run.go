package ingest

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Run is the explicit context object for one ingestion run. It replaces
// per-script checkpoint files: all progress state lives here and dies with
// the run.
type Run struct {
	ID        string
	StartedAt time.Time

	recordsRead        atomic.Int64
	duplicatesMerged   atomic.Int64
	verifiedRecords    atomic.Int64
	embeddingsComputed atomic.Int64
	upsertFailures     atomic.Int64
}

// NewRun creates a run context with a fresh id.
func NewRun() *Run {
	return &Run{ID: uuid.NewString(), StartedAt: time.Now()}
}

// Stats is a point-in-time copy of the run counters.
type Stats struct {
	RunID              string
	RecordsRead        int64
	DuplicatesMerged   int64
	VerifiedRecords    int64
	EmbeddingsComputed int64
	UpsertFailures     int64
	Elapsed            time.Duration
}

// Stats snapshots the counters.
func (r *Run) Stats() Stats {
	return Stats{
		RunID:              r.ID,
		RecordsRead:        r.recordsRead.Load(),
		DuplicatesMerged:   r.duplicatesMerged.Load(),
		VerifiedRecords:    r.verifiedRecords.Load(),
		EmbeddingsComputed: r.embeddingsComputed.Load(),
		UpsertFailures:     r.upsertFailures.Load(),
		Elapsed:            time.Since(r.StartedAt),
	}
}
