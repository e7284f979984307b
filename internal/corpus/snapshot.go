// Package corpus holds the fused researcher corpus served at query time:
// an immutable snapshot per ingestion generation with an id lookup table,
// swapped atomically so readers never observe a half-updated corpus.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iris-research/iris/internal/domain/researcher"
)

// Meta describes how a snapshot was produced.
type Meta struct {
	Generation string    `json:"generation"`
	CreatedAt  time.Time `json:"created_at"`
	Sources    []string  `json:"sources,omitempty"`
	EmbedModel string    `json:"embedding_model,omitempty"`
}

// Snapshot is one read-only corpus generation. Records are immutable once
// published; re-ingestion produces a new snapshot, never an in-place update.
type Snapshot struct {
	meta    Meta
	records []researcher.Record
	byID    map[int]*researcher.Record
}

// NewSnapshot builds a snapshot from fused records. Record IDs must be
// unique; they are the vector-index document ids.
func NewSnapshot(meta Meta, records []researcher.Record) (*Snapshot, error) {
	byID := make(map[int]*researcher.Record, len(records))
	for i := range records {
		id := records[i].ID
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("duplicate record id %d", id)
		}
		byID[id] = &records[i]
	}
	return &Snapshot{meta: meta, records: records, byID: byID}, nil
}

// Meta returns the snapshot metadata.
func (s *Snapshot) Meta() Meta { return s.meta }

// Len returns the number of researchers in this generation.
func (s *Snapshot) Len() int { return len(s.records) }

// Get returns the record with the given id, or nil.
func (s *Snapshot) Get(id int) *researcher.Record { return s.byID[id] }

// Records returns the backing record slice. Callers must not mutate it.
func (s *Snapshot) Records() []researcher.Record { return s.records }

// snapshotFile is the on-disk JSON layout.
type snapshotFile struct {
	Meta        Meta                `json:"metadata"`
	Researchers []researcher.Record `json:"researchers"`
}

// Load reads a snapshot from a JSON file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var f snapshotFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}

	snap, err := NewSnapshot(f.Meta, f.Researchers)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Save writes the snapshot to a JSON file, replacing it atomically via a
// temp file rename so a concurrent reloader never reads a partial file.
func (s *Snapshot) Save(path string) error {
	data, err := json.Marshal(snapshotFile{Meta: s.meta, Researchers: s.records})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}
