package overlap

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/coflow/core"
)

// Gaussian scores shared temporal mass by modeling every timestamp as a
// Gaussian pulse. Construct with NewGaussian; the zero value is unusable.
type Gaussian struct {
	spread float64 // pulse standard deviation, seconds
	cutoff float64 // truncation half-width, seconds (≤ MaxCutoffFactor·spread)
	method Method
	nodes  int
}

// NewGaussian validates opts and returns a ready scorer.
//
// Validation (in order):
//  1. Spread must be positive and finite         → ErrBadSpread.
//  2. CutoffFactor must be positive              → ErrBadCutoff.
//     Factors above MaxCutoffFactor are clamped, not rejected.
//  3. Method must be a declared enum value       → ErrUnknownMethod.
//  4. Nodes must be positive (quadrature only)   → ErrBadNodes.
func NewGaussian(opts Options) (*Gaussian, error) {
	if opts.Spread <= 0 || math.IsInf(opts.Spread, 0) || math.IsNaN(opts.Spread) {
		return nil, ErrBadSpread
	}
	if opts.CutoffFactor <= 0 {
		return nil, ErrBadCutoff
	}
	if opts.Method != MethodClosedForm && opts.Method != MethodQuadrature {
		return nil, ErrUnknownMethod
	}
	nodes := opts.Nodes
	if nodes == 0 {
		nodes = DefaultQuadratureNodes
	}
	if nodes < 0 {
		return nil, ErrBadNodes
	}

	factor := math.Min(opts.CutoffFactor, MaxCutoffFactor)

	return &Gaussian{
		spread: opts.Spread,
		cutoff: factor * opts.Spread,
		method: opts.Method,
		nodes:  nodes,
	}, nil
}

// Score sums the pairwise pulse overlap over every cross pair (ta, tb).
//
// Stage 1 (Window): a pair contributes only when its truncation window
// [max(ta,tb)−cutoff, min(ta,tb)+cutoff] is non-empty, i.e. the centers
// lie within 2·cutoff of each other.
// Stage 2 (Scan): both sets are sorted, so a sliding two-pointer scan
// visits only the pairs inside the window instead of all |A|·|B|.
// Stage 3 (Accumulate): each visited pair is evaluated with the
// configured Method and summed.
//
// Complexity: O(|A|·|B|) worst case, O(|A|+|B|+P) for P in-window pairs.
func (g *Gaussian) Score(a, b core.TimestampSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	reach := 2 * g.cutoff // seconds between centers beyond which a pair is dead
	total := 0.0
	lo := 0 // first index of b still within reach of the current a-timestamp

	var ta, tb float64
	for _, na := range a {
		ta = core.Seconds(na)

		// Slide the lower bound forward: pulses of b that ended too early
		// for this (and every later) a-timestamp.
		for lo < len(b) && core.Seconds(b[lo]) < ta-reach {
			lo++
		}

		for j := lo; j < len(b); j++ {
			tb = core.Seconds(b[j])
			if tb > ta+reach {
				break // b is sorted: every later pulse is farther away
			}
			total += g.pairOverlap(ta, tb)
		}
	}

	return total
}

// Disjoint reports that a (which starts first) can never overlap b, nor
// any set whose first timestamp is later than b's.
func (g *Gaussian) Disjoint(a, b core.TimestampSet) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}

	return core.Seconds(a[len(a)-1])+2*g.cutoff < core.Seconds(b[0])
}

// pairOverlap evaluates one (ta, tb) pair inside its truncation window.
func (g *Gaussian) pairOverlap(ta, tb float64) float64 {
	lower := math.Max(ta, tb) - g.cutoff
	upper := math.Min(ta, tb) + g.cutoff
	if lower >= upper {
		return 0 // pulses too far apart to matter
	}

	if g.method == MethodQuadrature {
		return g.quadrature(ta, tb, lower, upper)
	}

	return g.closedForm(ta, tb)
}

// closedForm approximates the overlap integral of two equal-spread pulses.
//
//	    ta :  tb  (dotted lines are the two pulse centers;
//	   /.\ : /.\   the double-dotted line is their midpoint)
//	  / . \:/ . \
//	 /  . /:\ .  \
//	/   ./ : \.   \
//
// By symmetry the overlap area is twice the far pulse's CDF up to the
// midpoint: the small triangle under the larger-mean pulse.
func (g *Gaussian) closedForm(ta, tb float64) float64 {
	mid := (ta + tb) / 2
	far := distuv.Normal{Mu: math.Max(ta, tb), Sigma: g.spread}

	return 2 * far.CDF(mid)
}

// quadrature integrates min(PDF_a, PDF_b) across the truncation window
// with fixed-order Gauss–Legendre quadrature.
func (g *Gaussian) quadrature(ta, tb, lower, upper float64) float64 {
	pa := distuv.Normal{Mu: ta, Sigma: g.spread}
	pb := distuv.Normal{Mu: tb, Sigma: g.spread}
	integrand := func(x float64) float64 {
		return math.Min(pa.Prob(x), pb.Prob(x))
	}

	return quad.Fixed(integrand, lower, upper, g.nodes, nil, 0)
}
