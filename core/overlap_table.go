package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConflictingEntry indicates that two source records carry different
// overlap scores for the same unordered stream pair. Overlap is symmetric
// by definition, so a contradiction means corrupted or duplicated input;
// callers must abort rather than silently overwrite.
var ErrConflictingEntry = errors.New("core: conflicting overlap entries for stream pair")

// ErrSelfPair indicates an attempt to record an overlap of a stream with
// itself. Self-overlap carries no pairwise information and is never stored.
var ErrSelfPair = errors.New("core: overlap entry for identical stream ids")

// ErrNegativeOverlap indicates an overlap score below zero, which the
// shared-mass model cannot produce.
var ErrNegativeOverlap = errors.New("core: negative overlap score")

// OverlapTable stores the raw pairwise overlap scores between streams.
//
// Entries are conceptually symmetric: the score for (a,b) equals the score
// for (b,a). The table keeps one canonical copy under the lexicographically
// smaller StreamID, so a mirrored write with a different value is detected
// as a data-integrity conflict instead of being overwritten.
//
// The running maximum across all entries is tracked on Set and used only
// for distance normalization; it is never mutated after the table is built.
type OverlapTable struct {
	data map[StreamID]map[StreamID]float64
	max  float64
}

// NewOverlapTable returns an empty table.
func NewOverlapTable() *OverlapTable {
	return &OverlapTable{data: make(map[StreamID]map[StreamID]float64)}
}

// Set records the overlap score for the unordered pair (a, b).
//
// Rules:
//   - a == b            → ErrSelfPair.
//   - score < 0         → ErrNegativeOverlap.
//   - score == 0        → ignored (absent entries read back as 0).
//   - existing entry with a different value → ErrConflictingEntry
//     (wrapped with both ids and both values for diagnostics).
//
// Setting the same value twice is allowed: mirrored records (a→b and b→a)
// are a normal shape for externally loaded tables.
func (t *OverlapTable) Set(a, b StreamID, score float64) error {
	if a.Compare(b) == 0 {
		return fmt.Errorf("%w: %q", ErrSelfPair, a)
	}
	if score < 0 {
		return fmt.Errorf("%w: (%q,%q)=%v", ErrNegativeOverlap, a, b, score)
	}
	if score == 0 {
		return nil // zero overlap is the implicit default
	}

	lo, hi := a, b
	if a.Compare(b) > 0 {
		lo, hi = b, a
	}

	inner, ok := t.data[lo]
	if !ok {
		inner = make(map[StreamID]float64)
		t.data[lo] = inner
	}
	if prev, exists := inner[hi]; exists && prev != score {
		return fmt.Errorf("%w: (%q,%q) held %v, got %v", ErrConflictingEntry, lo, hi, prev, score)
	}
	inner[hi] = score

	if score > t.max {
		t.max = score
	}

	return nil
}

// Get returns the overlap score for the unordered pair (a, b).
// Absent pairs (including a == b) read as 0.
func (t *OverlapTable) Get(a, b StreamID) float64 {
	if a.Compare(b) > 0 {
		a, b = b, a
	}

	return t.data[a][b]
}

// Max returns the maximum overlap score seen across all entries,
// or 0 when the table is empty.
func (t *OverlapTable) Max() float64 {
	return t.max
}

// Len returns the number of stored (non-zero) pairs.
func (t *OverlapTable) Len() int {
	n := 0
	for _, inner := range t.data {
		n += len(inner)
	}

	return n
}

// IDs returns every StreamID mentioned by any entry, ascending.
func (t *OverlapTable) IDs() []StreamID {
	seen := make(map[StreamID]struct{})
	for lo, inner := range t.data {
		seen[lo] = struct{}{}
		for hi := range inner {
			seen[hi] = struct{}{}
		}
	}

	ids := make([]StreamID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })

	return ids
}
