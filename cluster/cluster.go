package cluster

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/coflow/core"
	"github.com/katalvlaran/coflow/distance"
	"github.com/katalvlaran/coflow/hdbscan"
	"github.com/katalvlaran/coflow/optics"
)

// Sentinel errors. Configuration problems surface at construction,
// before any clustering runs.
var (
	// ErrUnsupportedStrategy indicates a Strategy value this package
	// does not recognize.
	ErrUnsupportedStrategy = errors.New("cluster: unsupported strategy")

	// ErrBadMinSamples indicates OrderingParams.MinSamples < 1 or a
	// negative HierarchicalParams.MinSamples.
	ErrBadMinSamples = errors.New("cluster: MinSamples out of range")

	// ErrBadMaxEps indicates a negative or NaN OrderingParams.MaxEps.
	ErrBadMaxEps = errors.New("cluster: MaxEps must be non-negative")

	// ErrBadMinClusterSize indicates HierarchicalParams.MinClusterSize < 2.
	ErrBadMinClusterSize = errors.New("cluster: MinClusterSize must be at least 2")

	// ErrNilMatrix indicates a nil distance matrix passed to Cluster.
	ErrNilMatrix = errors.New("cluster: nil distance matrix")
)

// NoiseLabel marks streams not confidently grouped with any cluster.
const NoiseLabel = -1

// Strategy selects the clustering algorithm.
type Strategy int

const (
	// StrategyOrdering is reachability-ordering density clustering.
	StrategyOrdering Strategy = iota + 1
	// StrategyHierarchical is condensed-tree density clustering.
	StrategyHierarchical
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyOrdering:
		return "ORDERING"
	case StrategyHierarchical:
		return "HIERARCHICAL"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// OrderingParams configures StrategyOrdering.
//
//	MinSamples — required; neighbors needed for an item to be core.
//	MaxEps     — optional neighborhood radius; zero means unlimited
//	             (the plateau threshold is then derived adaptively).
type OrderingParams struct {
	MinSamples int
	MaxEps     float64
}

// HierarchicalParams configures StrategyHierarchical.
//
//	MinClusterSize — required; smallest surviving cluster.
//	MinSamples     — optional; zero means "use MinClusterSize".
type HierarchicalParams struct {
	MinClusterSize int
	MinSamples     int
}

// Config names a strategy and carries its parameters. Only the params
// struct matching Strategy is consulted.
type Config struct {
	Strategy     Strategy
	Ordering     OrderingParams
	Hierarchical HierarchicalParams
}

// Clusterer runs one clustering strategy over a distance matrix. Both
// strategies honor the same contract: one label and one confidence per
// stream, NoiseLabel for unclustered streams, deterministic output.
type Clusterer interface {
	Cluster(m *distance.Matrix) (*Assignment, error)
}

// New validates cfg and returns the matching Clusterer. Unknown
// strategies and out-of-range parameters fail here, not at run time.
func New(cfg Config) (Clusterer, error) {
	switch cfg.Strategy {
	case StrategyOrdering:
		return newOrdering(cfg.Ordering)
	case StrategyHierarchical:
		return newHierarchical(cfg.Hierarchical)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, cfg.Strategy)
	}
}

// Run is the one-shot form of New followed by Cluster.
func Run(cfg Config, m *distance.Matrix) (*Assignment, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c.Cluster(m)
}

// ordering adapts package optics to the Clusterer contract.
type ordering struct {
	opts optics.Options
}

func newOrdering(p OrderingParams) (*ordering, error) {
	if p.MinSamples < 1 {
		return nil, fmt.Errorf("%w: ordering MinSamples %d", ErrBadMinSamples, p.MinSamples)
	}
	if p.MaxEps < 0 || math.IsNaN(p.MaxEps) {
		return nil, fmt.Errorf("%w: ordering MaxEps %v", ErrBadMaxEps, p.MaxEps)
	}
	return &ordering{opts: optics.Options{MinSamples: p.MinSamples, MaxEps: p.MaxEps}}, nil
}

// Cluster implements Clusterer.
func (o *ordering) Cluster(m *distance.Matrix) (*Assignment, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	res, err := optics.Run(m.Size(), m.Func(), o.opts)
	if err != nil {
		return nil, fmt.Errorf("cluster: ordering: %w", err)
	}
	return newAssignment(m.IDs(), res.Labels, res.Confidences), nil
}

// hierarchical adapts package hdbscan to the Clusterer contract.
type hierarchical struct {
	opts hdbscan.Options
}

func newHierarchical(p HierarchicalParams) (*hierarchical, error) {
	if p.MinClusterSize < 2 {
		return nil, fmt.Errorf("%w: hierarchical MinClusterSize %d", ErrBadMinClusterSize, p.MinClusterSize)
	}
	if p.MinSamples < 0 {
		return nil, fmt.Errorf("%w: hierarchical MinSamples %d", ErrBadMinSamples, p.MinSamples)
	}
	return &hierarchical{opts: hdbscan.Options{
		MinClusterSize: p.MinClusterSize,
		MinSamples:     p.MinSamples,
	}}, nil
}

// Cluster implements Clusterer.
func (h *hierarchical) Cluster(m *distance.Matrix) (*Assignment, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	res, err := hdbscan.Run(m.Size(), m.Func(), h.opts)
	if err != nil {
		return nil, fmt.Errorf("cluster: hierarchical: %w", err)
	}
	return newAssignment(m.IDs(), res.Labels, res.Probabilities), nil
}

// newAssignment zips the matrix row order with per-row labels and
// confidences into the immutable lookup structure.
func newAssignment(ids []core.StreamID, labels []int, confidences []float64) *Assignment {
	a := &Assignment{
		ids:  ids,
		byID: make(map[core.StreamID]Membership, len(ids)),
	}
	for i, id := range ids {
		a.byID[id] = Membership{Label: labels[i], Confidence: confidences[i]}
	}
	return a
}
