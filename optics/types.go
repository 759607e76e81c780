package optics

import (
	"errors"
	"math"
)

// Sentinel errors. All validation happens before any computation.
var (
	// ErrNoItems indicates an empty input set (n ≤ 0).
	ErrNoItems = errors.New("optics: no items to cluster")

	// ErrNilDistance indicates a nil pairwise distance function.
	ErrNilDistance = errors.New("optics: distance function is nil")

	// ErrBadMinSamples indicates MinSamples < 1; the core-distance
	// definition needs at least one neighbor.
	ErrBadMinSamples = errors.New("optics: MinSamples must be at least 1")

	// ErrBadMaxEps indicates a negative or NaN neighborhood radius.
	ErrBadMaxEps = errors.New("optics: MaxEps must be non-negative")
)

// Noise is the reserved label for items not confidently grouped with
// any cluster. Labels are equality classes, not magnitudes.
const Noise = -1

// Options configures one clustering run.
//
//	MinSamples — required; the k in "distance to the k-th nearest
//	             neighbor" that defines an item's core distance.
//	MaxEps     — neighborhood radius. Neighbors farther than MaxEps are
//	             invisible both to core distances and to reachability
//	             updates, and MaxEps doubles as the flat-extraction
//	             plateau threshold. Zero (or +Inf) means unlimited:
//	             every neighbor counts and the plateau threshold is
//	             derived adaptively from the reachability profile.
type Options struct {
	MinSamples int
	MaxEps     float64
}

// DefaultOptions returns Options with the given MinSamples and an
// unlimited radius (adaptive plateau threshold).
func DefaultOptions(minSamples int) Options {
	return Options{MinSamples: minSamples, MaxEps: math.Inf(1)}
}

// Result is the full outcome of one run. All per-item slices are indexed
// by item (matrix row), not by processing position.
//
//	Order        — items in the sequence they were emitted.
//	Reachability — final reachability distance per item (+Inf for the
//	               first item of each density-connected component).
//	CoreDist     — core distance per item (+Inf when undefined).
//	Labels       — cluster label per item; Noise for unclustered items.
//	Confidences  — membership confidence per item in [0,1].
//	Threshold    — the plateau threshold the extraction actually used
//	               (MaxEps, or the adaptively derived value).
type Result struct {
	Order        []int
	Reachability []float64
	CoreDist     []float64
	Labels       []int
	Confidences  []float64
	Threshold    float64
}
