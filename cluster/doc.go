// Package cluster dispatches a distance matrix to one of the density
// clustering strategies and exposes their shared output contract.
//
// 🚀 What it offers
//
//	Two interchangeable strategies behind one interface:
//
//	  - StrategyOrdering      — reachability-ordering clustering
//	                            (package optics); tunables MinSamples
//	                            and optional MaxEps.
//	  - StrategyHierarchical  — condensed-tree clustering (package
//	                            hdbscan); tunables MinClusterSize and
//	                            optional MinSamples.
//
//	Both produce an Assignment: one label and one confidence in [0,1]
//	per StreamID, with NoiseLabel (-1) for items not confidently
//	grouped anywhere. Callers pick a strategy by configuration and stay
//	agnostic to which algorithm ran.
//
//	Configurations are validated when the Clusterer is constructed,
//	never at call time: an unknown strategy or a missing required
//	parameter fails before any computation starts, and no partial
//	clustering is ever returned.
//
//	Assignment.Report() renders the grouped view: groups sorted by
//	label (noise first), members sorted by StreamID inside each group.
//	The view is rebuilt on each call and safe to retain.
//
// Determinism: identical matrices and configurations yield identical
// assignments and reports on every run.
package cluster
