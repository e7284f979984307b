// Package ranking computes the blended query-time score combining
// semantic similarity with normalized citation-impact metrics.
package ranking

import (
	"fmt"

	"github.com/iris-research/iris/internal/domain"
	"github.com/iris-research/iris/internal/domain/researcher"
)

// Weights controls how much citation impact contributes to the score.
// The remainder (1 - H - Citation) goes to semantic similarity.
type Weights struct {
	H        float64
	Citation float64
}

// Validate rejects weights that are negative or sum past 1. This is the
// one validated precondition in the scoring core: a negative semantic
// weight would invert ranking silently.
func (w Weights) Validate() error {
	if w.H < 0 || w.Citation < 0 {
		return fmt.Errorf("%w: weights must be non-negative", domain.ErrInvalidWeights)
	}
	if w.H+w.Citation > 1 {
		return fmt.Errorf(
			"%w: h_weight + citation_weight must not exceed 1, got %.3f",
			domain.ErrInvalidWeights, w.H+w.Citation,
		)
	}
	return nil
}

// SemanticWeight returns the residual weight applied to semantic similarity.
func (w Weights) SemanticWeight() float64 { return 1 - w.H - w.Citation }

// Score blends semantic similarity with h-index and citations normalized
// against the candidate-set maxima:
//
//	score = similarity*(1-hW-cW) + (h/maxH)*hW + (citations/maxC)*cW
//
// maxH and maxCitations are floored at 1 so empty or zero-metric candidate
// sets never divide by zero. Deterministic for fixed inputs. Weights are
// assumed validated.
func Score(similarity float64, m researcher.Metrics, maxH, maxCitations int, w Weights) float64 {
	if maxH < 1 {
		maxH = 1
	}
	if maxCitations < 1 {
		maxCitations = 1
	}

	normalizedH := float64(m.HIndex) / float64(maxH)
	normalizedCitations := float64(m.TotalCitations) / float64(maxCitations)

	return similarity*w.SemanticWeight() + normalizedH*w.H + normalizedCitations*w.Citation
}

// NormalizeSimilarity maps an index-reported similarity into [0,1].
// Cosine backends may report in [-1,1]; anything already in [0,1] passes
// through, and out-of-range values are clamped.
func NormalizeSimilarity(s float64) float64 {
	if s < 0 {
		s = (s + 1) / 2
	}
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
