// Package coflow correlates timing activity across many labeled event
// streams to decide which streams plausibly share a common source.
//
// 🚀 What is coflow?
//
//	A pure-Go engine that models each stream's timestamps as Gaussian
//	pulses, scores pairwise temporal overlap, converts overlap into a
//	bounded dissimilarity, and groups streams with density-based
//	clustering:
//	  • Overlap models: Gaussian (closed-form or quadrature) & fixed-margin
//	  • Distance transforms: exponential decay & linear normalization
//	  • Symmetric distance matrices with integrity validation
//	  • Clustering: reachability ordering (OPTICS-style) and
//	    condensed-tree hierarchy (HDBSCAN-style)
//	  • Parameter tuning via genetic hill climbing
//
// ✨ Why choose coflow?
//
//   - Deterministic – sorted stream order, reproducible labels & confidences
//   - Typed failures – configuration, data-integrity and strategy errors
//     are sentinel errors, never printed-and-ignored
//   - Strategy-agnostic output – every clusterer emits the same
//     label + membership-confidence contract
//
// Everything is organized under focused subpackages:
//
//	core/     — StreamID, TimestampSet, OverlapTable and time units
//	overlap/  — pulse-overlap scorers (Gaussian, fixed-margin)
//	distance/ — overlap→distance transforms and the matrix builder
//	optics/   — ordering-based density clustering
//	hdbscan/  — hierarchical (condensed-tree) density clustering
//	cluster/  — strategy dispatch, assignments and grouped reports
//	tune/     — ground-truth scoring and genetic parameter search
//
// Data flows core → overlap → distance → optics/hdbscan → cluster;
// tune closes the loop by scoring outcomes against known groupings.
//
//	go get github.com/katalvlaran/coflow
package coflow
