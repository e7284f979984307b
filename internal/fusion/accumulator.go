package fusion

import (
	"sort"
	"strings"
	"sync"

	"github.com/iris-research/iris/internal/domain/researcher"
)

// MergeKey is the identity key for ingestion-time fusion: normalized name
// plus institution. Records sharing a key are treated as the same logical
// person and merged.
func MergeKey(name, institution string) string {
	n := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	i := strings.Join(strings.Fields(strings.ToLower(institution)), " ")
	return n + "|" + i
}

// Accumulator fuses partial records arriving concurrently from many
// source adapters. Merges for distinct keys run in parallel; merges for
// the same key are serialized by a per-key lock, so the associativity of
// Merge over metrics/provenance/interests holds regardless of arrival
// order.
type Accumulator struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu     sync.Mutex
	record researcher.Record
	merges int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{entries: make(map[string]*entry)}
}

// Apply merges rec into the record accumulated under its key, reporting
// whether an existing identity absorbed it. Safe for concurrent use; at
// most one merge per key is in flight at a time.
func (a *Accumulator) Apply(rec researcher.Record) bool {
	key := MergeKey(rec.Name, rec.Institution)

	a.mu.Lock()
	e, existed := a.entries[key]
	if !existed {
		e = &entry{}
		a.entries[key] = e
	}
	a.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.merges == 0 {
		// Normalize the first arrival the same way Merge would.
		e.record = Merge(rec, researcher.Record{})
	} else {
		e.record = Merge(e.record, rec)
	}
	e.merges++
	return e.merges > 1
}

// Len returns the number of distinct identities accumulated so far.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Records returns the fused records sorted by h-index descending (name
// ascending on ties, for a stable corpus order across runs).
func (a *Accumulator) Records() []researcher.Record {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]researcher.Record, 0, len(a.entries))
	for _, e := range a.entries {
		e.mu.Lock()
		out = append(out, e.record)
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Metrics.HIndex != out[j].Metrics.HIndex {
			return out[i].Metrics.HIndex > out[j].Metrics.HIndex
		}
		return out[i].Name < out[j].Name
	})
	return out
}
