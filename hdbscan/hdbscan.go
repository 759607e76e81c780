package hdbscan

import (
	"math"
	"sort"
)

// Run clusters n items given their pairwise distance function.
//
// Stage 1 (Validate): n, dist and Options are checked up front; nothing
// is computed for invalid configurations.
// Stage 2 (Core distances): per item, the MinSamples-th smallest
// distance to another item.
// Stage 3 (Spanning tree): Prim over the mutual-reachability metric
// max(core_a, core_b, dist(a,b)); O(n²), deterministic tie-breaks.
// Stage 4 (Hierarchy): spanning-tree edges merged in ascending weight
// build the single-linkage dendrogram.
// Stage 5 (Condense): splits smaller than MinClusterSize become items
// falling out of their parent; the rest become condensed clusters with
// a birth density λ = 1/distance.
// Stage 6 (Select): excess-of-mass picks every condensed cluster more
// stable than the sum of its selected descendants, bottom-up, root
// excluded.
// Stage 7 (Label): items map to their lowest selected ancestor, with
// probability λ_item/λ_max inside the cluster; the rest are noise.
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
	if opts.MinClusterSize < 2 {
		return nil, ErrBadMinClusterSize
	}
	if opts.MinSamples < 0 {
		return nil, ErrBadMinSamples
	}
	minSamples := opts.MinSamples
	if minSamples == 0 {
		minSamples = opts.MinClusterSize
	}

	// Degenerate but valid: with fewer than minSamples neighbors no
	// item has a defined core distance, so nothing can cluster. This
	// also covers the single-item input.
	if minSamples > n-1 {
		return allNoise(n), nil
	}

	// 2) Core distances.
	core := coreDistances(n, dist, minSamples)

	// 3) Spanning tree over mutual reachability.
	mreach := func(i, j int) float64 {
		return math.Max(core[i], math.Max(core[j], dist(i, j)))
	}
	edges := primMST(n, mreach)

	// 4) Single-linkage hierarchy.
	h := buildHierarchy(n, edges)

	// 5) Condensed tree.
	c := condense(h, opts.MinClusterSize)

	// 6) Stability and excess-of-mass selection.
	stab := c.stabilities()
	selected := c.selectClusters(stab)

	// 7) Flat labels and membership probabilities.
	return c.label(selected, stab), nil
}

// allNoise is the outcome for inputs where no cluster can form: every
// item is noise with zero membership probability.
func allNoise(n int) *Result {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Noise
	}

	return &Result{
		Labels:        labels,
		Probabilities: make([]float64, n),
		Stabilities:   map[int]float64{},
	}
}

// coreDistances computes the minSamples-th nearest-neighbor distance
// per item (+Inf when fewer neighbors exist). O(n² log n).
func coreDistances(n int, dist func(i, j int) float64, minSamples int) []float64 {
	core := make([]float64, n)
	row := make([]float64, 0, n-1)

	for i := 0; i < n; i++ {
		row = row[:0]
		for j := 0; j < n; j++ {
			if j != i {
				row = append(row, dist(i, j))
			}
		}
		if len(row) < minSamples {
			core[i] = math.Inf(1)
			continue
		}
		sort.Float64s(row)
		core[i] = row[minSamples-1]
	}

	return core
}

// edge is one spanning-tree edge; a < b after normalization.
type edge struct {
	a, b int
	w    float64
}

// primMST builds a minimum spanning tree over the complete graph given
// by the weight function. Dense Prim: O(n²) time, O(n) space. Ties on
// weight resolve to the smallest candidate index so the tree is
// deterministic.
func primMST(n int, weight func(i, j int) float64) []edge {
	const unvisited = -1

	inTree := make([]bool, n)
	best := make([]float64, n)
	from := make([]int, n)
	for i := range best {
		best[i] = math.Inf(1)
		from[i] = unvisited
	}

	edges := make([]edge, 0, n-1)
	current := 0
	inTree[0] = true

	for len(edges) < n-1 {
		// Relax frontier distances through the newly added item.
		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			if w := weight(current, j); w < best[j] {
				best[j] = w
				from[j] = current
			}
		}

		// Pick the cheapest frontier item, smallest index on ties.
		next := unvisited
		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			if next == unvisited || best[j] < best[next] {
				next = j
			}
		}

		a, b := from[next], next
		if a > b {
			a, b = b, a
		}
		edges = append(edges, edge{a: a, b: b, w: best[next]})
		inTree[next] = true
		current = next
	}

	return edges
}

// hierarchy is the single-linkage dendrogram. Leaves are items 0..n-1;
// internal nodes n..2n-2 merge two sub-dendrograms at a distance.
type hierarchy struct {
	n        int
	children [][2]int  // per internal node, indexed by node-n
	weight   []float64 // merge distance per internal node
	size     []int     // item count per node, leaves included
}

// buildHierarchy merges spanning-tree edges in ascending weight via
// union-find, creating one internal node per merge.
func buildHierarchy(n int, edges []edge) *hierarchy {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].w != edges[j].w {
			return edges[i].w < edges[j].w
		}
		if edges[i].a != edges[j].a {
			return edges[i].a < edges[j].a
		}
		return edges[i].b < edges[j].b
	})

	h := &hierarchy{
		n:        n,
		children: make([][2]int, n-1),
		weight:   make([]float64, n-1),
		size:     make([]int, 2*n-1),
	}

	parent := make([]int, 2*n-1)
	for i := range parent {
		parent[i] = i
		if i < n {
			h.size[i] = 1
		}
	}
	var find func(x int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	for i, e := range edges {
		ra, rb := find(e.a), find(e.b)
		node := n + i
		h.children[i] = [2]int{ra, rb}
		h.weight[i] = e.w
		h.size[node] = h.size[ra] + h.size[rb]
		parent[ra], parent[rb] = node, node
	}

	return h
}

// lambdaOf converts a merge distance into a density level. Zero
// distance maps to the largest finite level so stability arithmetic
// stays NaN-free.
func lambdaOf(w float64) float64 {
	if w <= 0 {
		return math.MaxFloat64
	}
	return 1 / w
}

// condensedTree is the hierarchy with sub-MinClusterSize splits folded
// into "item falls out of cluster" events. Cluster 0 is the root.
type condensedTree struct {
	parent   []int     // per cluster; -1 for the root
	birth    []float64 // λ at which the cluster appeared
	size     []int     // items under the cluster at birth
	children [][]int   // child clusters

	pointCluster []int     // per item, the cluster it fell out of
	pointLambda  []float64 // per item, the λ at which it fell out
}

// condense walks the dendrogram top-down. A split where both sides hold
// at least minClusterSize items creates two child clusters; a smaller
// side sheds its items into the current cluster at the split's λ.
func condense(h *hierarchy, minClusterSize int) *condensedTree {
	c := &condensedTree{
		parent:       []int{-1},
		birth:        []float64{0},
		size:         []int{h.size[2*h.n-2]},
		children:     [][]int{nil},
		pointCluster: make([]int, h.n),
		pointLambda:  make([]float64, h.n),
	}

	type frame struct {
		node    int
		cluster int
	}
	stack := []frame{{node: 2*h.n - 2, cluster: 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right := h.children[f.node-h.n][0], h.children[f.node-h.n][1]
		lam := lambdaOf(h.weight[f.node-h.n])
		bigLeft := h.size[left] >= minClusterSize
		bigRight := h.size[right] >= minClusterSize

		switch {
		case bigLeft && bigRight:
			// True split: both sides survive as clusters of their own.
			cl := c.newCluster(f.cluster, lam, h.size[left])
			cr := c.newCluster(f.cluster, lam, h.size[right])
			stack = append(stack, frame{node: left, cluster: cl}, frame{node: right, cluster: cr})
		case bigLeft:
			c.shed(h, right, f.cluster, lam)
			stack = append(stack, frame{node: left, cluster: f.cluster})
		case bigRight:
			c.shed(h, left, f.cluster, lam)
			stack = append(stack, frame{node: right, cluster: f.cluster})
		default:
			c.shed(h, left, f.cluster, lam)
			c.shed(h, right, f.cluster, lam)
		}
	}

	return c
}

func (c *condensedTree) newCluster(parent int, birth float64, size int) int {
	id := len(c.birth)
	c.parent = append(c.parent, parent)
	c.birth = append(c.birth, birth)
	c.size = append(c.size, size)
	c.children = append(c.children, nil)
	c.children[parent] = append(c.children[parent], id)
	return id
}

// shed records every item under node as falling out of cluster at λ.
func (c *condensedTree) shed(h *hierarchy, node, cluster int, lam float64) {
	stack := []int{node}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v < h.n {
			c.pointCluster[v] = cluster
			c.pointLambda[v] = lam
			continue
		}
		stack = append(stack, h.children[v-h.n][0], h.children[v-h.n][1])
	}
}

// stabilities scores each cluster by the λ-lifetime of its members
// beyond its birth: shed items contribute λ_item − λ_birth, child
// clusters contribute (λ_split − λ_birth) · size.
func (c *condensedTree) stabilities() []float64 {
	stab := make([]float64, len(c.birth))
	for p, cl := range c.pointCluster {
		stab[cl] += c.pointLambda[p] - c.birth[cl]
	}
	for cl, kids := range c.children {
		for _, k := range kids {
			stab[cl] += (c.birth[k] - c.birth[cl]) * float64(c.size[k])
		}
	}
	return stab
}

// selectClusters performs excess-of-mass selection: bottom-up, a
// cluster at least as stable as its selected descendants wins and
// shadows them. The root never competes.
func (c *condensedTree) selectClusters(stab []float64) []bool {
	nc := len(c.birth)
	selected := make([]bool, nc)
	subtree := make([]float64, nc)

	// Children always carry larger ids than their parent, so a simple
	// descending sweep visits children first.
	for cl := nc - 1; cl >= 1; cl-- {
		if len(c.children[cl]) == 0 {
			selected[cl] = true
			subtree[cl] = stab[cl]
			continue
		}
		sum := 0.0
		for _, k := range c.children[cl] {
			sum += subtree[k]
		}
		if stab[cl] >= sum {
			selected[cl] = true
			subtree[cl] = stab[cl]
		} else {
			subtree[cl] = sum
		}
	}

	// A selected cluster shadows everything below it.
	var unselect func(cl int)
	unselect = func(cl int) {
		selected[cl] = false
		for _, k := range c.children[cl] {
			unselect(k)
		}
	}
	var walk func(cl int)
	walk = func(cl int) {
		if selected[cl] {
			for _, k := range c.children[cl] {
				unselect(k)
			}
			return
		}
		for _, k := range c.children[cl] {
			walk(k)
		}
	}
	walk(0)

	return selected
}

// label maps each item to its lowest selected ancestor and derives the
// per-item membership probability λ_item/λ_max within that cluster.
func (c *condensedTree) label(selected []bool, stab []float64) *Result {
	labelOf := make([]int, len(selected))
	stabilities := make(map[int]float64)
	next := 0
	for cl, sel := range selected {
		if !sel {
			labelOf[cl] = Noise
			continue
		}
		labelOf[cl] = next
		stabilities[next] = stab[cl]
		next++
	}

	n := len(c.pointCluster)
	labels := make([]int, n)
	probs := make([]float64, n)
	lmax := make([]float64, next)

	for p := 0; p < n; p++ {
		cl := c.pointCluster[p]
		for cl >= 0 && !selected[cl] {
			cl = c.parent[cl]
		}
		if cl < 0 {
			labels[p] = Noise
			continue
		}
		labels[p] = labelOf[cl]
		if c.pointLambda[p] > lmax[labels[p]] {
			lmax[labels[p]] = c.pointLambda[p]
		}
	}

	for p := 0; p < n; p++ {
		if labels[p] == Noise {
			continue
		}
		m := lmax[labels[p]]
		if m <= 0 {
			probs[p] = 1
			continue
		}
		pr := c.pointLambda[p] / m
		if pr > 1 {
			pr = 1
		}
		probs[p] = pr
	}

	return &Result{Labels: labels, Probabilities: probs, Stabilities: stabilities}
}
