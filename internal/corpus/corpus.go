package corpus

import (
	"sync/atomic"

	"github.com/iris-research/iris/internal/domain"
)

// Corpus is the process-lifetime handle to the current snapshot. Swap is a
// single pointer store; queries running against an older generation finish
// against that generation undisturbed.
type Corpus struct {
	current atomic.Pointer[Snapshot]
}

// New creates an empty corpus handle. Queries fail with ErrCorpusNotReady
// until the first Swap.
func New() *Corpus {
	return &Corpus{}
}

// Swap publishes a new generation and returns the previous one (nil on
// first publish).
func (c *Corpus) Swap(s *Snapshot) *Snapshot {
	return c.current.Swap(s)
}

// Snapshot returns the current generation.
func (c *Corpus) Snapshot() (*Snapshot, error) {
	s := c.current.Load()
	if s == nil {
		return nil, domain.ErrCorpusNotReady
	}
	return s, nil
}

// Ready reports whether a generation has been published.
func (c *Corpus) Ready() bool {
	return c.current.Load() != nil
}
