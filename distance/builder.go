package distance

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/katalvlaran/coflow/core"
	"github.com/katalvlaran/coflow/overlap"
)

// BuilderOptions configures matrix construction.
//
//	Transform — required overlap→distance strategy (Exponential or Linear).
//	Workers   — parallel workers for raw overlap scoring; ≤ 0 means one
//	            worker per available CPU. Parallelism never changes the
//	            result: each unordered pair owns its two mirrored cells,
//	            and the max-overlap reduction is associative.
type BuilderOptions struct {
	Transform Transform
	Workers   int
}

// DefaultBuilderOptions returns options with the exponential transform at
// DefaultAlpha and automatic worker count.
func DefaultBuilderOptions() BuilderOptions {
	exp, _ := NewExponential(DefaultAlpha) // DefaultAlpha is always valid

	return BuilderOptions{Transform: exp}
}

// FromTimestamps scores every unordered stream pair with the given
// scorer and returns the transformed, validated matrix.
//
// Stage 1 (Validate): non-nil scorer and transform, non-empty input.
// Stage 2 (Index):    sort StreamIDs once; index i is fixed for the run.
// Stage 3 (Score):    fan unordered pairs (i<j) out to workers; each
// writes the raw score into its two mirrored cells and tracks a local
// maximum, merged by an associative max-reduce.
// Stage 4 (Transform): with the global maximum known, map every
// off-diagonal cell through the Transform in place.
// Stage 5 (Verify):   range-check the finished matrix.
//
// Complexity: O(N²/2) scorer calls across workers, O(N²) transform pass.
func FromTimestamps(sets map[core.StreamID]core.TimestampSet, scorer overlap.Scorer, opts BuilderOptions) (*Matrix, error) {
	if scorer == nil {
		return nil, ErrNilScorer
	}
	if opts.Transform == nil {
		return nil, ErrNilTransform
	}
	if len(sets) == 0 {
		return nil, ErrNoStreams
	}

	ids := core.SortedIDs(sets)
	m := newMatrix(ids)
	n := len(ids)

	times := make([]core.TimestampSet, n)
	for i, id := range ids {
		times[i] = sets[id]
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type pair struct{ i, j int }
	jobs := make(chan pair)

	var (
		mu        sync.Mutex
		globalMax float64
		wg        sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			localMax := 0.0
			for p := range jobs {
				a, b := times[p.i], times[p.j]
				// Cheap O(1) rejection before the full scan. Disjoint
				// assumes its first argument starts no later.
				first, second := a, b
				if len(a) > 0 && len(b) > 0 && a[0] > b[0] {
					first, second = b, a
				}
				raw := 0.0
				if !scorer.Disjoint(first, second) {
					raw = scorer.Score(a, b)
				}
				m.setPair(p.i, p.j, raw)
				if raw > localMax {
					localMax = raw
				}
			}
			mu.Lock()
			if localMax > globalMax {
				globalMax = localMax
			}
			mu.Unlock()
		}()
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs <- pair{i, j}
		}
	}
	close(jobs)
	wg.Wait()

	m.maxOverlap = globalMax
	applyTransform(m, opts.Transform)
	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// FromTable ingests a precomputed nested overlap table as produced by an
// external loader. Entries may appear under either key order; mirrored
// duplicates with the same value are legal, contradictory values abort
// the build with core.ErrConflictingEntry and no matrix is returned.
func FromTable(entries map[core.StreamID]map[core.StreamID]float64, opts BuilderOptions) (*Matrix, error) {
	if opts.Transform == nil {
		return nil, ErrNilTransform
	}
	if len(entries) == 0 {
		return nil, ErrNoStreams
	}

	// Canonicalize through an OverlapTable: its Set detects duplicate and
	// contradictory records for the same unordered pair.
	tbl := core.NewOverlapTable()
	for a, inner := range entries {
		for b, score := range inner {
			if err := tbl.Set(a, b, score); err != nil {
				return nil, fmt.Errorf("ingesting overlap table: %w", err)
			}
		}
	}

	// Index every stream mentioned anywhere, including outer keys whose
	// inner maps were empty (streams that overlapped with nothing).
	seen := make(map[core.StreamID]core.TimestampSet, len(entries))
	for a, inner := range entries {
		seen[a] = nil
		for b := range inner {
			seen[b] = nil
		}
	}

	return FromOverlapTable(tbl, core.SortedIDs(seen), opts)
}

// FromOverlapTable builds the matrix from an already-canonical table.
// ids fixes the row/column order; nil means the table's own sorted ids.
// The table's running maximum is the normalization constant — a zero
// maximum degrades every pair to distance 1 rather than erroring.
func FromOverlapTable(tbl *core.OverlapTable, ids []core.StreamID, opts BuilderOptions) (*Matrix, error) {
	if opts.Transform == nil {
		return nil, ErrNilTransform
	}
	if ids == nil {
		ids = tbl.IDs()
	}
	if len(ids) == 0 {
		return nil, ErrNoStreams
	}

	m := newMatrix(ids)
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			m.setPair(i, j, tbl.Get(ids[i], ids[j]))
		}
	}

	m.maxOverlap = tbl.Max()
	applyTransform(m, opts.Transform)
	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// applyTransform maps every off-diagonal cell through t once the global
// maximum is known. Mirrored cells hold identical raw values, so the
// matrix stays exactly symmetric.
func applyTransform(m *Matrix, t Transform) {
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			m.setPair(i, j, t.Distance(m.data[i*m.n+j], m.maxOverlap))
		}
	}
}
