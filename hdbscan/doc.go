// Package hdbscan implements hierarchical density clustering over a
// pairwise distance function (HDBSCAN-style).
//
// 🚀 How it works
//
//	Every item gets a core distance (the distance to its MinSamples-th
//	nearest neighbor), which inflates the metric into mutual
//	reachability: mreach(a,b) = max(core(a), core(b), dist(a,b)). A
//	minimum spanning tree over the mutual-reachability graph, merged
//	edge by edge in ascending weight, yields the single-linkage
//	hierarchy. The hierarchy is then condensed: a split only counts
//	when both sides hold at least MinClusterSize items; smaller sides
//	simply "fall out" of their parent cluster as the density level
//	λ = 1/distance rises.
//
//	Each condensed cluster is scored by its stability — the total
//	λ-lifetime of its members beyond the cluster's birth level — and
//	the final flat clustering picks, bottom-up, every cluster that is
//	more stable than the sum of its selected descendants (excess of
//	mass, root excluded). Items falling out above every selected
//	cluster are noise.
//
//	Probability per item is λ_item/λ_max within its cluster, clamped to
//	[0,1]: items that persisted to the cluster's densest level score 1,
//	items that fell out early score proportionally less.
//
// Complexity:
//
//   - Time:  O(N²) for core distances and the Prim spanning tree,
//     O(N log N) for the merge and condense passes.
//   - Space: O(N); the pairwise matrix is never materialized here.
//
// Determinism: identical inputs yield identical labels, probabilities
// and stabilities on every run; ties are broken by index and there is
// no randomness or map iteration in the hot path.
package hdbscan
