package distance

import (
	"errors"
	"math"
)

// Sentinel errors shared across the package.
var (
	// ErrBadAlpha indicates a non-positive or non-finite decay rate.
	ErrBadAlpha = errors.New("distance: alpha must be positive and finite")

	// ErrNilTransform indicates that a Builder was invoked without a transform.
	ErrNilTransform = errors.New("distance: transform is nil")

	// ErrNilScorer indicates that FromTimestamps was invoked without a scorer.
	ErrNilScorer = errors.New("distance: scorer is nil")

	// ErrNoStreams indicates an empty input: there is nothing to correlate.
	ErrNoStreams = errors.New("distance: no streams provided")

	// ErrTransformRange indicates a custom Transform produced a value
	// outside [0,1] or a NaN; the matrix contract would be violated.
	ErrTransformRange = errors.New("distance: transform produced value outside [0,1]")

	// ErrIndexOutOfBounds indicates a row or column index outside the matrix.
	ErrIndexOutOfBounds = errors.New("distance: index out of bounds")
)

// DefaultAlpha is the exponential decay rate used when callers have no
// tuned value. Useful values span roughly 3 (gentle) to 13 (aggressive);
// 13 is the rate the production correlation path settled on.
const DefaultAlpha = 13.0

// Transform maps a raw overlap score to a dissimilarity in [0,1].
//
// Implementations must be pure: no shared state, same inputs → same
// output. The Builder calls Distance once per ordered pair.
//
// Boundary contract (every implementation):
//   - overlap ≤ 0            → 1 (no relationship, maximal distance)
//   - overlap ≥ maxOverlap   → 0 (strongest observed relationship)
//   - maxOverlap ≤ 0         → 1 (nothing overlapped anywhere; degrade,
//     do not error)
type Transform interface {
	Distance(overlap, maxOverlap float64) float64
}

// Exponential is the decay transform exp(−α·overlap/maxOverlap).
// Construct with NewExponential; α controls how sharply distance falls
// off as overlap approaches the observed maximum.
type Exponential struct {
	alpha float64
}

// NewExponential validates alpha and returns the transform.
// Non-positive or non-finite alpha → ErrBadAlpha.
func NewExponential(alpha float64) (Exponential, error) {
	if alpha <= 0 || math.IsInf(alpha, 0) || math.IsNaN(alpha) {
		return Exponential{}, ErrBadAlpha
	}

	return Exponential{alpha: alpha}, nil
}

// Distance implements Transform with exponential decay.
func (e Exponential) Distance(overlap, maxOverlap float64) float64 {
	if overlap <= 0 || maxOverlap <= 0 {
		return 1
	}
	if overlap >= maxOverlap {
		return 0
	}

	return math.Exp(-e.alpha * (overlap / maxOverlap))
}

// Linear is the flat normalization 1 − overlap/maxOverlap. It keeps the
// same boundary contract as Exponential but does not reward near-maximal
// overlaps disproportionately; a simpler, non-decaying alternative.
type Linear struct{}

// Distance implements Transform with linear normalization.
func (Linear) Distance(overlap, maxOverlap float64) float64 {
	if overlap <= 0 || maxOverlap <= 0 {
		return 1
	}
	if overlap >= maxOverlap {
		return 0
	}

	return 1 - overlap/maxOverlap
}
