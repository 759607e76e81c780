package hdbscan

import "errors"

// Sentinel errors. All validation happens before any computation.
var (
	// ErrNoItems indicates an empty input set (n ≤ 0).
	ErrNoItems = errors.New("hdbscan: no items to cluster")

	// ErrNilDistance indicates a nil pairwise distance function.
	ErrNilDistance = errors.New("hdbscan: distance function is nil")

	// ErrBadMinClusterSize indicates MinClusterSize < 2; a cluster of
	// one item is indistinguishable from noise.
	ErrBadMinClusterSize = errors.New("hdbscan: MinClusterSize must be at least 2")

	// ErrBadMinSamples indicates a negative MinSamples.
	ErrBadMinSamples = errors.New("hdbscan: MinSamples must be non-negative")
)

// Noise is the reserved label for items not confidently grouped with
// any cluster. Labels are equality classes, not magnitudes.
const Noise = -1

// Options configures one clustering run.
//
//	MinClusterSize — required; the smallest group of items the
//	                 condensed hierarchy treats as a cluster rather
//	                 than as items falling out of their parent.
//	MinSamples     — the k in "distance to the k-th nearest neighbor"
//	                 that defines an item's core distance. Zero means
//	                 "use MinClusterSize".
type Options struct {
	MinClusterSize int
	MinSamples     int
}

// DefaultOptions returns Options with the given MinClusterSize and
// MinSamples derived from it.
func DefaultOptions(minClusterSize int) Options {
	return Options{MinClusterSize: minClusterSize}
}

// Result is the full outcome of one run. Per-item slices are indexed by
// item (matrix row).
//
//	Labels        — cluster label per item; Noise for unclustered items.
//	Probabilities — membership strength per item in [0,1]; 0 for noise.
//	Stabilities   — excess-of-mass stability per final label.
type Result struct {
	Labels        []int
	Probabilities []float64
	Stabilities   map[int]float64
}
