// Package tune scores a clustering outcome against ground-truth time
// regions and searches the parameter space for better configurations.
//
// 🚀 How it works
//
//	Ground truth is a list of Regions: disjoint, ascending time windows
//	in which related streams are known to start. A stream maps to the
//	region containing its earliest timestamp; streams starting between
//	two regions (or before the first / after the last) land on a
//	half-region and are expected to stay unclustered.
//
//	Score grades a cluster report on three equally weighted components:
//
//	  - size metric        — exp(-|formed-expected|/expected), rewarding
//	                         the right number of clusters;
//	  - average purity     — per cluster, the share of its members whose
//	                         expected region is the cluster's dominant
//	                         one (half-region members excluded);
//	  - unclustered purity — the share of the noise group that indeed
//	                         belongs to a half-region.
//
//	HillClimb walks (MinSamples, MaxEps, Spread) with a mutation-only
//	genetic search (github.com/MaxHalford/eaopt, ModMutationOnly): a
//	tiny population, one tunable nudged per step, hall of fame keeping
//	the best configuration ever seen. The caller supplies the scoring
//	closure, typically re-running the full pipeline per candidate.
//
// Scores live in [0,1]; higher is better. The search maximizes the
// caller's score by minimizing its negation.
package tune
