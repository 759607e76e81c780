package overlap

import (
	"math"
	"sort"

	"github.com/katalvlaran/coflow/core"
)

// FixedMargin scores shared temporal mass with hard intervals instead of
// Gaussian pulses: every timestamp t covers [t−Margin, t+Margin] and the
// score is the exact number of seconds during which both streams are
// active, measured by a sweep line over interval endpoints.
//
// Compared to the Gaussian model it has sharp edges (a pair either
// co-occurs or it does not) and needs no spread parameter.
type FixedMargin struct {
	margin uint64 // half-width in nanoseconds
}

// NewFixedMargin returns a sweep-line scorer with the given half-width
// in nanoseconds. A zero margin collapses every interval to a point and
// can only ever produce zero scores, so it is rejected with ErrBadMargin.
func NewFixedMargin(margin uint64) (*FixedMargin, error) {
	if margin == 0 {
		return nil, ErrBadMargin
	}

	return &FixedMargin{margin: margin}, nil
}

// event marks one interval endpoint for the sweep line.
type event struct {
	at    uint64
	kind  uint8 // 1 start, 2 end
	owner uint8 // 1 for set a, 2 for set b
}

// Score measures the seconds during which intervals of both sets are
// simultaneously active.
//
// Stage 1: expand every timestamp into start/end events (underflow-safe).
// Stage 2: sort events by time; ends before starts on ties so touching
// intervals do not count as co-active.
// Stage 3: sweep, accumulating time while both sets have an active
// interval. Nested intervals of the same set are handled by counting
// active intervals, not flags, so self-overlap is never double counted.
//
// Complexity: O(n log n) for n = 2(|A|+|B|) events.
func (f *FixedMargin) Score(a, b core.TimestampSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	events := make([]event, 0, 2*(len(a)+len(b)))
	add := func(times core.TimestampSet, owner uint8) {
		for _, t := range times {
			start := uint64(0)
			if t > f.margin {
				start = t - f.margin
			}
			events = append(events,
				event{at: start, kind: 1, owner: owner},
				event{at: satAdd(t, f.margin), kind: 2, owner: owner},
			)
		}
	}
	add(a, 1)
	add(b, 2)

	sort.Slice(events, func(i, j int) bool {
		if events[i].at == events[j].at {
			if events[i].kind == events[j].kind {
				return events[i].owner < events[j].owner
			}

			return events[i].kind > events[j].kind // ends first
		}

		return events[i].at < events[j].at
	})

	var totalNS, last uint64
	activeA, activeB := 0, 0
	for _, e := range events {
		if activeA > 0 && activeB > 0 {
			totalNS += e.at - last
		}
		switch {
		case e.kind == 1 && e.owner == 1:
			activeA++
		case e.kind == 1 && e.owner == 2:
			activeB++
		case e.owner == 1:
			activeA--
		default:
			activeB--
		}
		last = e.at
	}

	return core.Seconds(totalNS)
}

// Disjoint reports that a (which starts first) can never overlap b, nor
// any set whose first timestamp is later than b's. Written without
// subtraction to stay safe near the zero timestamp; the addition
// saturates to stay safe near the maximal one.
func (f *FixedMargin) Disjoint(a, b core.TimestampSet) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}

	return satAdd(satAdd(a[len(a)-1], f.margin), f.margin) < b[0]
}

// satAdd adds two nanosecond quantities, saturating at the maximal
// timestamp instead of wrapping around.
func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}

	return a + b
}
