// Package core provides the fundamental domain types shared by every
// coflow subpackage: stream identifiers, timestamp sets, the symmetric
// overlap table, and nanosecond/second unit conversions.
//
// Types:
//
//   - StreamID      — opaque, totally-ordered identifier of one event stream.
//   - TimestampSet  — ascending uint64 nanosecond timestamps of one stream.
//   - OverlapTable  — symmetric (StreamID, StreamID) → overlap score store
//     with canonical lower-key-first storage, conflict detection on Set,
//     and a running maximum used for distance normalization.
//
// Determinism contract: every consumer indexes streams through the sorted
// order returned by SortedIDs / OverlapTable.IDs, so index i refers to the
// same StreamID across all structures derived within one run.
//
// Lifecycle: TimestampSet and OverlapTable are produced by an external
// loader, consumed read-only by the engine, and never mutated afterwards.
package core
