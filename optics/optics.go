package optics

import (
	"container/heap"
	"math"
	"sort"
)

// Run clusters n items given their pairwise distance function.
//
// Stage 1 (Validate): n, dist and Options are checked up front; nothing
// is computed for invalid configurations.
// Stage 2 (Core distances): per item, the MinSamples-th smallest
// distance within MaxEps, or +Inf when too few neighbors qualify.
// Stage 3 (Ordering): lazy-decrease-key min-heap emits items by
// smallest known reachability, ties by index; reachability of a
// neighbor only ever decreases once discovered.
// Stage 4 (Extraction): flat labels from the ordered reachability
// sequence against the plateau threshold; noise where density never
// sufficed.
// Stage 5 (Confidence): 1 − coreDist/maxCore, clamped to [0,1];
// undefined core distance → 0.
//
// The same inputs always produce the same Result.
func Run(n int, dist func(i, j int) float64, opts Options) (*Result, error) {
	// 1) Fail fast on configuration problems.
	if n <= 0 {
		return nil, ErrNoItems
	}
	if dist == nil {
		return nil, ErrNilDistance
	}
	if opts.MinSamples < 1 {
		return nil, ErrBadMinSamples
	}
	maxEps := opts.MaxEps
	if maxEps == 0 {
		maxEps = math.Inf(1) // zero value means "unlimited"
	}
	if maxEps < 0 || math.IsNaN(maxEps) {
		return nil, ErrBadMaxEps
	}

	r := &runner{
		n:       n,
		dist:    dist,
		opts:    Options{MinSamples: opts.MinSamples, MaxEps: maxEps},
		reach:   make([]float64, n),
		visited: make([]bool, n),
	}

	r.coreDistances()
	r.order()

	threshold := maxEps
	if math.IsInf(threshold, 1) {
		threshold = dominantGapThreshold(r.finalReach)
	}
	labels := r.extract(threshold)

	return &Result{
		Order:        r.emitted,
		Reachability: r.finalReach,
		CoreDist:     r.core,
		Labels:       labels,
		Confidences:  confidences(r.core),
		Threshold:    threshold,
	}, nil
}

// runner holds the mutable state of a single run.
type runner struct {
	n    int
	dist func(i, j int) float64
	opts Options

	core       []float64 // core distance per item (+Inf when undefined)
	reach      []float64 // best-known reachability while ordering
	finalReach []float64 // reachability frozen at emission time
	visited    []bool
	emitted    []int // processing order
	pq         reachPQ
}

// coreDistances computes the MinSamples-th nearest-neighbor distance per
// item, ignoring neighbors beyond MaxEps. O(n² log n).
func (r *runner) coreDistances() {
	r.core = make([]float64, r.n)
	row := make([]float64, 0, r.n-1)

	for i := 0; i < r.n; i++ {
		row = row[:0]
		for j := 0; j < r.n; j++ {
			if j == i {
				continue // the diagonal is never read
			}
			if d := r.dist(i, j); d <= r.opts.MaxEps {
				row = append(row, d)
			}
		}
		if len(row) < r.opts.MinSamples {
			r.core[i] = math.Inf(1) // undefined: not a core point
			continue
		}
		sort.Float64s(row)
		r.core[i] = row[r.opts.MinSamples-1]
	}
}

// order emits all items by smallest known reachability. Each unvisited
// seed (ascending index) opens a new expansion with +Inf reachability.
func (r *runner) order() {
	r.finalReach = make([]float64, r.n)
	r.emitted = make([]int, 0, r.n)
	for i := range r.reach {
		r.reach[i] = math.Inf(1)
	}
	heap.Init(&r.pq)

	for seed := 0; seed < r.n; seed++ {
		if r.visited[seed] {
			continue
		}
		heap.Push(&r.pq, &reachItem{idx: seed, reach: math.Inf(1)})
		r.expand()
	}
}

// expand drains the heap, visiting items and relaxing reachabilities.
func (r *runner) expand() {
	var (
		item     *reachItem
		p        int
		d, cand  float64
		coreDist float64
	)
	for r.pq.Len() > 0 {
		item = heap.Pop(&r.pq).(*reachItem)
		p = item.idx
		if r.visited[p] {
			continue // stale duplicate from lazy decrease-key
		}
		r.visited[p] = true
		r.finalReach[p] = item.reach
		r.emitted = append(r.emitted, p)

		coreDist = r.core[p]
		if math.IsInf(coreDist, 1) {
			continue // not a core point: expands nothing
		}
		for q := 0; q < r.n; q++ {
			if r.visited[q] || q == p {
				continue
			}
			d = r.dist(p, q)
			if d > r.opts.MaxEps {
				continue
			}
			cand = math.Max(coreDist, d)
			if cand < r.reach[q] {
				r.reach[q] = cand
				heap.Push(&r.pq, &reachItem{idx: q, reach: cand})
			}
		}
	}
}

// extract reads flat labels off the ordered reachability sequence.
// An item whose reachability exceeds the threshold starts a new cluster
// when it is core within the threshold, and is noise otherwise.
func (r *runner) extract(threshold float64) []int {
	labels := make([]int, r.n)
	for i := range labels {
		labels[i] = Noise
	}

	current := Noise
	next := 0
	var reach float64
	for _, p := range r.emitted {
		reach = r.finalReach[p]
		if reach > threshold || math.IsInf(reach, 1) {
			if !math.IsInf(r.core[p], 1) && r.core[p] <= threshold {
				labels[p] = next
				current = next
				next++
			} else {
				labels[p] = Noise
			}
			continue
		}
		if current == Noise {
			// Reachable item with no open cluster (its predecessor was
			// noise): it can only anchor a cluster if itself core.
			if math.IsInf(r.core[p], 1) || r.core[p] > threshold {
				continue
			}
			current = next
			next++
		}
		labels[p] = current
	}

	return labels
}

// dominantGapThreshold derives the plateau threshold from the finite
// reachabilities when no MaxEps was configured: sort them and find the
// single largest jump; if that jump accounts for more than half of the
// total spread, the boundary lies in its middle. Otherwise the profile
// is flat and everything stays in one cluster (+Inf threshold).
func dominantGapThreshold(reach []float64) float64 {
	finite := make([]float64, 0, len(reach))
	for _, v := range reach {
		if !math.IsInf(v, 1) {
			finite = append(finite, v)
		}
	}
	if len(finite) < 2 {
		return math.Inf(1)
	}
	sort.Float64s(finite)

	span := finite[len(finite)-1] - finite[0]
	if span == 0 {
		return math.Inf(1)
	}

	maxGap, lower := 0.0, 0.0
	for i := 1; i < len(finite); i++ {
		if gap := finite[i] - finite[i-1]; gap > maxGap {
			maxGap = gap
			lower = finite[i-1]
		}
	}
	if maxGap <= span/2 {
		return math.Inf(1)
	}

	return lower + maxGap/2
}

// confidences maps core distances to membership confidence:
// 1 − core/maxCore over the finite core distances, clamped to [0,1];
// undefined core distance → 0. A zero maxCore (all items maximally
// dense) gives confidence 1 to every defined item.
func confidences(core []float64) []float64 {
	maxCore := 0.0
	for _, c := range core {
		if !math.IsInf(c, 1) && c > maxCore {
			maxCore = c
		}
	}

	out := make([]float64, len(core))
	for i, c := range core {
		if math.IsInf(c, 1) {
			continue // undefined core distance → confidence 0
		}
		if maxCore == 0 {
			out[i] = 1
			continue
		}
		conf := 1 - c/maxCore
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		out[i] = conf
	}

	return out
}

// reachItem is one (item, reachability) entry in the ordering heap.
type reachItem struct {
	idx   int
	reach float64
}

// reachPQ is a min-heap of *reachItem ordered by reachability, ties by
// index so the processing order is fully deterministic. Lazy
// decrease-key: improvements push duplicates, stale entries are skipped
// via the visited set when popped.
type reachPQ []*reachItem

func (pq reachPQ) Len() int { return len(pq) }

func (pq reachPQ) Less(i, j int) bool {
	if pq[i].reach == pq[j].reach {
		return pq[i].idx < pq[j].idx
	}

	return pq[i].reach < pq[j].reach
}

func (pq reachPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *reachPQ) Push(x interface{}) { *pq = append(*pq, x.(*reachItem)) }

func (pq *reachPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
