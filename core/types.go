package core

import "sort"

// NanosPerSecond is the number of nanoseconds in one second.
// All raw timestamps are uint64 nanoseconds; all pulse math runs in seconds.
const NanosPerSecond = uint64(1e9)

// StreamID identifies one event stream (for example one network session)
// being correlated against others. IDs are opaque but totally ordered;
// every derived structure processes streams in ascending StreamID order
// for deterministic results.
type StreamID string

// Compare returns -1 if s < other, 0 if s == other, and 1 if s > other.
func (s StreamID) Compare(other StreamID) int {
	switch {
	case s < other:
		return -1
	case s > other:
		return 1
	default:
		return 0
	}
}

// TimestampSet is the ordered sequence of integer nanosecond timestamps
// owned by exactly one StreamID. It is immutable once loaded; Sort exists
// for loaders that assemble the set incrementally.
type TimestampSet []uint64

// Sort orders the set ascending in place. Loaders call this once after
// assembly; the engine assumes sorted input everywhere.
func (ts TimestampSet) Sort() {
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
}

// Sorted reports whether the set is in ascending order.
func (ts TimestampSet) Sorted() bool {
	return sort.SliceIsSorted(ts, func(i, j int) bool { return ts[i] < ts[j] })
}

// Seconds converts a nanosecond timestamp to float64 seconds.
func Seconds(timestamp uint64) float64 {
	return float64(timestamp) / float64(NanosPerSecond)
}

// Nanos converts float64 seconds to a uint64 nanosecond timestamp,
// keeping nine digits after the decimal point. Negative inputs clamp to 0
// (timestamps cannot precede the epoch of a capture).
func Nanos(seconds float64) uint64 {
	res := seconds * float64(NanosPerSecond)
	if res < 0 {
		return 0
	}

	return uint64(res)
}

// SortedIDs returns the keys of sets in ascending StreamID order.
// This is the canonical index order reused by every derived structure.
func SortedIDs(sets map[StreamID]TimestampSet) []StreamID {
	ids := make([]StreamID, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

	return ids
}
