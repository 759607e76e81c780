// Package distance turns raw pairwise overlap scores into a validated,
// symmetric dissimilarity matrix over sorted stream identifiers.
//
// Two stages, deliberately separated:
//
//  1. Transform — a pure function mapping (overlap, maxOverlap) to a
//     dissimilarity in [0,1]. Two strategies:
//     • Exponential: exp(−α·overlap/maxOverlap), sharply rewarding
//     overlaps near the observed maximum (α ≈ 3–13 is useful).
//     • Linear: 1 − overlap/maxOverlap, a flat normalization.
//     Both pin the boundaries: zero overlap → 1, maximal overlap → 0,
//     and a degenerate maxOverlap of 0 collapses every pair to 1.
//
//  2. Builder — fills an N×N Matrix either by scoring raw timestamp
//     sets (overlap.Scorer) or by ingesting a precomputed overlap
//     table. Raw overlaps for distinct unordered pairs are independent,
//     so scoring fans out across workers; the global maximum is an
//     associative max-reduce, and the Transform is applied only after
//     the maximum is known (two passes over the cells).
//
// Integrity: contradictory source records for the same pair abort the
// build with core.ErrConflictingEntry — the Builder is all-or-nothing
// and never returns a partially filled matrix. The finished Matrix is
// exactly symmetric with every off-diagonal entry in [0,1]; the
// diagonal is left at zero and never read by the clusterers.
package distance
