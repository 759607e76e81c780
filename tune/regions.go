package tune

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/coflow/core"
)

// Sentinel errors.
var (
	// ErrNoRegions indicates an empty ground-truth region list.
	ErrNoRegions = errors.New("tune: no regions")

	// ErrBadRegions indicates regions that are inverted, overlapping or
	// out of order.
	ErrBadRegions = errors.New("tune: regions must be ascending and disjoint")

	// ErrUnknownStream indicates a report member with no recorded
	// timestamps.
	ErrUnknownStream = errors.New("tune: stream missing from timestamp map")

	// ErrNilScore indicates a nil scoring function passed to HillClimb.
	ErrNilScore = errors.New("tune: score function is nil")
)

// Region is one ground-truth time window, nanosecond bounds inclusive.
type Region struct {
	Min uint64
	Max uint64
}

// BuildRegions converts regions given in seconds relative to origin
// into absolute nanosecond regions, widening each bound by leeway
// seconds. Widening never crosses a neighboring region: a start claims
// at most down to the previous end, an end at most up to the next
// start. The first start floors at zero and the last end extends
// freely.
func BuildRegions(relative []Region, origin uint64, leeway uint64) ([]Region, error) {
	if len(relative) == 0 {
		return nil, ErrNoRegions
	}

	rel := make([]Region, len(relative))
	copy(rel, relative)
	for i, r := range rel {
		if r.Min > r.Max {
			return nil, fmt.Errorf("%w: region %d inverted", ErrBadRegions, i)
		}
		if i > 0 && r.Min < rel[i-1].Max {
			return nil, fmt.Errorf("%w: region %d starts before region %d ends", ErrBadRegions, i, i-1)
		}
	}

	if leeway != 0 {
		for i := range rel {
			switch {
			case i == 0:
				if rel[i].Min > leeway {
					rel[i].Min -= leeway
				} else {
					rel[i].Min = 0
				}
			case rel[i].Min > leeway && rel[i].Min-leeway > rel[i-1].Max:
				rel[i].Min -= leeway
			default:
				rel[i].Min = rel[i-1].Max
			}

			switch {
			case i == len(rel)-1:
				rel[i].Max += leeway
			case rel[i].Max+leeway < rel[i+1].Min:
				rel[i].Max += leeway
			default:
				rel[i].Max = rel[i+1].Min
			}
		}
	}

	out := make([]Region, len(rel))
	for i, r := range rel {
		out[i] = Region{
			Min: r.Min*core.NanosPerSecond + origin,
			Max: r.Max*core.NanosPerSecond + origin,
		}
	}

	return out, nil
}

// RegionOf maps a stream's earliest timestamp to its expected region:
// whole numbers 1..len(regions) inside a region, halves for the gaps
// (0.5 before the first region, k+0.5 between region k and k+1, and
// after the last). Streams on halves are expected to stay unclustered.
func RegionOf(earliest uint64, regions []Region) float64 {
	for i, r := range regions {
		id := float64(i + 1)
		if earliest < r.Min {
			return id - 0.5
		}
		if earliest <= r.Max {
			return id
		}
	}

	return float64(len(regions)) + 0.5
}
