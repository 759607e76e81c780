// Package overlap scores the shared "temporal mass" between two streams'
// timestamp sets.
//
// 🚀 What is pulse overlap?
//
//	Each timestamp is treated as the center of a Gaussian pulse with
//	standard deviation Spread. The overlap between two streams is the
//	sum, over every cross pair of timestamps, of the pairwise pulse
//	overlap inside a truncation window of ±Cutoff around the pair.
//	Streams driven by the same source pulse at the same moments, so
//	their shared mass is large; unrelated streams score near zero.
//
// Two equivalent Gaussian evaluation strategies are selectable:
//
//   - MethodClosedForm — contribution = 2·CDF(mid; far, Spread), where
//     mid is the midpoint of the two centers and far the larger one.
//     Assumes equal spread for both pulses; fast, the default.
//   - MethodQuadrature — contribution = ∫ min(PDF_a, PDF_b) over the
//     truncation window via fixed Gauss–Legendre quadrature. Exact but
//     slower; useful for cross-checking the closed form.
//
// The two formulas differ only by the mass outside the truncation
// window; neither is canonical, which is why both remain exposed.
//
// A third Scorer, FixedMargin, replaces pulses with hard ±Margin
// intervals and measures exact co-active time with a sweep line. It is
// cheaper and sharper-edged than the Gaussian model.
//
// Complexity:
//
//   - Gaussian: O(|A|·|B|) worst case, but a two-pointer scan skips all
//     pairs farther apart than the truncation window, so sparse
//     clustered sets cost far less in practice.
//   - FixedMargin: O((|A|+|B|)·log(|A|+|B|)) for the event sort.
//
// Cutoff policy: the truncation window never exceeds 4×Spread — beyond
// four standard deviations a Gaussian carries negligible mass (>99.99%
// is inside), so wider windows only waste work.
package overlap
