package overlap

import (
	"errors"

	"github.com/katalvlaran/coflow/core"
)

// Sentinel errors. All constructors validate up front and return these;
// Score itself never fails (invalid configurations cannot be built).
var (
	// ErrBadSpread indicates a non-positive or non-finite pulse spread.
	ErrBadSpread = errors.New("overlap: spread must be positive and finite")

	// ErrBadCutoff indicates a non-positive cutoff factor.
	ErrBadCutoff = errors.New("overlap: cutoff factor must be positive")

	// ErrUnknownMethod indicates a Method value outside the declared enum.
	ErrUnknownMethod = errors.New("overlap: unknown evaluation method")

	// ErrBadMargin indicates a zero fixed margin, which collapses every
	// interval to a point and makes all overlaps vacuously zero.
	ErrBadMargin = errors.New("overlap: margin must be positive")

	// ErrBadNodes indicates a non-positive quadrature node count.
	ErrBadNodes = errors.New("overlap: quadrature nodes must be positive")
)

// Method selects the Gaussian pairwise pulse-overlap formula.
type Method int

const (
	// MethodClosedForm evaluates 2·CDF(mid; far, Spread): a closed-form
	// approximation of the overlap integral assuming equal spreads.
	// Default; one CDF call per contributing pair.
	MethodClosedForm Method = iota

	// MethodQuadrature integrates min(PDF_a, PDF_b) over the truncation
	// window by fixed-order Gauss–Legendre quadrature. More exact,
	// roughly Nodes× more expensive per pair.
	MethodQuadrature
)

// MaxCutoffFactor caps the truncation window at four standard deviations.
// Beyond 4σ a Gaussian pulse carries less than 0.01% of its mass.
const MaxCutoffFactor = 4.0

// Defaults for Options. DefaultCutoffFactor matches MaxCutoffFactor: the
// widest window that still pays for itself.
const (
	DefaultCutoffFactor    = MaxCutoffFactor
	DefaultQuadratureNodes = 64
)

// Options configures a Gaussian scorer.
//
//	Spread       — pulse standard deviation in seconds. Required, > 0.
//	CutoffFactor — truncation half-width in multiples of Spread.
//	               Values above MaxCutoffFactor are clamped down to it.
//	Method       — MethodClosedForm (default) or MethodQuadrature.
//	Nodes        — Gauss–Legendre node count for MethodQuadrature.
type Options struct {
	Spread       float64
	CutoffFactor float64
	Method       Method
	Nodes        int
}

// DefaultOptions returns Options for the given spread with the default
// cutoff factor, closed-form evaluation and default quadrature order.
func DefaultOptions(spread float64) Options {
	return Options{
		Spread:       spread,
		CutoffFactor: DefaultCutoffFactor,
		Method:       MethodClosedForm,
		Nodes:        DefaultQuadratureNodes,
	}
}

// Scorer computes the non-negative shared-mass score of two streams.
//
// Both timestamp sets must be sorted ascending (core.TimestampSet
// contract). Score is commutative: Score(a,b) == Score(b,a).
//
// Disjoint assumes a starts no later than b (sorted-by-first-timestamp
// iteration) and reports that no overlap is possible between a and b —
// nor between a and any set starting even later — letting pairwise
// builders break out of inner loops early.
type Scorer interface {
	Score(a, b core.TimestampSet) float64
	Disjoint(a, b core.TimestampSet) bool
}
