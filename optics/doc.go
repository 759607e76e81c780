// Package optics implements ordering-based density clustering over a
// pairwise distance function (OPTICS-style).
//
// 🚀 How it works
//
//	Every item gets a core distance: the distance to its MinSamples-th
//	nearest neighbor, or +Inf when fewer than MinSamples neighbors lie
//	within MaxEps. Items are then emitted in reachability order — the
//	unvisited item with the smallest known reachability distance is
//	always processed next (ties broken by index, i.e. by sorted
//	StreamID, for determinism). The reachability of a neighbor q seen
//	from a visited core point p is max(coreDist(p), dist(p,q)); once
//	discovered it only ever decreases.
//
//	Flat clusters are read off the ordered reachability sequence:
//	an item whose reachability exceeds the plateau threshold starts a
//	new cluster (if it is itself core) or becomes noise (if it is not).
//	With a finite MaxEps the threshold is MaxEps; otherwise a dominant-
//	gap rule inspects the finite reachabilities and, when one jump
//	accounts for more than half of their total spread, splits there —
//	a flat profile stays one cluster.
//
//	Confidence per item is 1 − coreDist/maxCore over the finite core
//	distances, clamped to [0,1]; items with undefined core distance are
//	noise with confidence 0.
//
// The visit loop is the same lazy-decrease-key min-heap used for
// shortest-path ordering: duplicates are pushed on improvement and
// stale entries are skipped when popped.
//
// Complexity:
//
//   - Time:  O(N² log N) — N core-distance sorts plus heap traffic.
//   - Space: O(N²) is never materialized here; the package only reads
//     the provided distance function and keeps O(N) state.
//
// Determinism: identical inputs yield identical order, labels and
// confidences on every run; there is no randomness and no map iteration
// in the hot path.
package optics
