package distance_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/coflow/core"
	"github.com/katalvlaran/coflow/distance"
	"github.com/katalvlaran/coflow/overlap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// secondsApart builds a TimestampSet from offsets in seconds.
func secondsApart(offsets ...float64) core.TimestampSet {
	ts := make(core.TimestampSet, len(offsets))
	for i, s := range offsets {
		ts[i] = core.Nanos(s)
	}

	return ts
}

// twoGroups is a fixture with two temporally distinct activity bursts:
// alpha/bravo pulse together early, xray/yankee pulse together late.
func twoGroups() map[core.StreamID]core.TimestampSet {
	return map[core.StreamID]core.TimestampSet{
		"alpha":  secondsApart(1.00, 2.00, 3.00),
		"bravo":  secondsApart(1.01, 2.01, 3.01),
		"xray":   secondsApart(100.00, 101.00, 102.00),
		"yankee": secondsApart(100.01, 101.01, 102.01),
	}
}

func gaussianScorer(t *testing.T) overlap.Scorer {
	t.Helper()
	g, err := overlap.NewGaussian(overlap.DefaultOptions(0.05))
	require.NoError(t, err)

	return g
}

// TestFromTimestamps_Validation covers the fail-fast guards.
func TestFromTimestamps_Validation(t *testing.T) {
	opts := distance.DefaultBuilderOptions()

	_, err := distance.FromTimestamps(twoGroups(), nil, opts)
	assert.ErrorIs(t, err, distance.ErrNilScorer)

	_, err = distance.FromTimestamps(twoGroups(), gaussianScorer(t), distance.BuilderOptions{})
	assert.ErrorIs(t, err, distance.ErrNilTransform)

	_, err = distance.FromTimestamps(nil, gaussianScorer(t), opts)
	assert.ErrorIs(t, err, distance.ErrNoStreams)
}

// TestFromTimestamps_SymmetryAndRange verifies the matrix output
// guarantee: exact symmetry and off-diagonal entries in [0,1].
func TestFromTimestamps_SymmetryAndRange(t *testing.T) {
	m, err := distance.FromTimestamps(twoGroups(), gaussianScorer(t), distance.DefaultBuilderOptions())
	require.NoError(t, err)
	require.Equal(t, 4, m.Size())

	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			if i == j {
				continue
			}
			dij, err := m.At(i, j)
			require.NoError(t, err)
			dji, err := m.At(j, i)
			require.NoError(t, err)
			assert.Equal(t, dij, dji, "matrix must be exactly symmetric at (%d,%d)", i, j)
			assert.GreaterOrEqual(t, dij, 0.0)
			assert.LessOrEqual(t, dij, 1.0)
		}
	}
}

// TestFromTimestamps_GroupStructure: streams pulsing together are near,
// streams in different bursts are at maximal distance.
func TestFromTimestamps_GroupStructure(t *testing.T) {
	m, err := distance.FromTimestamps(twoGroups(), gaussianScorer(t), distance.DefaultBuilderOptions())
	require.NoError(t, err)

	ids := m.IDs()
	assert.Equal(t, []core.StreamID{"alpha", "bravo", "xray", "yankee"}, ids, "index order is sorted StreamID order")

	dist := m.Func()
	assert.Less(t, dist(0, 1), 0.1, "alpha-bravo pulse together")
	assert.Less(t, dist(2, 3), 0.1, "xray-yankee pulse together")
	assert.Equal(t, 1.0, dist(0, 2), "bursts 97 s apart share no mass")
	assert.Equal(t, 1.0, dist(1, 3), "bursts 97 s apart share no mass")
}

// TestFromTimestamps_Deterministic: worker count must not change a
// single cell (pair cells are disjoint, max-reduce is associative).
func TestFromTimestamps_Deterministic(t *testing.T) {
	opts1 := distance.DefaultBuilderOptions()
	opts1.Workers = 1
	opts8 := distance.DefaultBuilderOptions()
	opts8.Workers = 8

	m1, err := distance.FromTimestamps(twoGroups(), gaussianScorer(t), opts1)
	require.NoError(t, err)
	m8, err := distance.FromTimestamps(twoGroups(), gaussianScorer(t), opts8)
	require.NoError(t, err)

	d1, d8 := m1.Func(), m8.Func()
	for i := 0; i < m1.Size(); i++ {
		for j := 0; j < m1.Size(); j++ {
			assert.Equal(t, d1(i, j), d8(i, j), "cell (%d,%d)", i, j)
		}
	}
	assert.Equal(t, m1.MaxOverlap(), m8.MaxOverlap())
}

// TestFromTimestamps_NoOverlapAnywhere: a zero global maximum collapses
// every pair to distance 1 instead of failing.
func TestFromTimestamps_NoOverlapAnywhere(t *testing.T) {
	sets := map[core.StreamID]core.TimestampSet{
		"a": secondsApart(0),
		"b": secondsApart(1000),
		"c": secondsApart(2000),
	}
	m, err := distance.FromTimestamps(sets, gaussianScorer(t), distance.DefaultBuilderOptions())
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.MaxOverlap())
	dist := m.Func()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				assert.Equal(t, 1.0, dist(i, j))
			}
		}
	}
}

// TestFromTable_ConflictingEntries: contradictory records for the same
// unordered pair abort the build; no matrix is surfaced.
func TestFromTable_ConflictingEntries(t *testing.T) {
	entries := map[core.StreamID]map[core.StreamID]float64{
		"a": {"b": 10},
		"b": {"a": 7},
	}
	m, err := distance.FromTable(entries, distance.DefaultBuilderOptions())
	assert.ErrorIs(t, err, core.ErrConflictingEntry)
	assert.Nil(t, m, "all-or-nothing: no partial matrix")
}

// TestFromTable_MirroredDuplicates: identical mirrored records are the
// normal shape of externally loaded tables and must not conflict.
func TestFromTable_MirroredDuplicates(t *testing.T) {
	entries := map[core.StreamID]map[core.StreamID]float64{
		"a": {"b": 10},
		"b": {"a": 10},
	}
	m, err := distance.FromTable(entries, distance.DefaultBuilderOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
	assert.Equal(t, 10.0, m.MaxOverlap())
}

// TestFromTable_TransformApplication pins exact transformed values for
// the exponential strategy with alpha=3.
func TestFromTable_TransformApplication(t *testing.T) {
	exp, err := distance.NewExponential(3)
	require.NoError(t, err)

	entries := map[core.StreamID]map[core.StreamID]float64{
		"a": {"b": 10},
		"c": {"d": 5},
	}
	m, err := distance.FromTable(entries, distance.BuilderOptions{Transform: exp})
	require.NoError(t, err)
	require.Equal(t, []core.StreamID{"a", "b", "c", "d"}, m.IDs())

	dist := m.Func()
	assert.Equal(t, 0.0, dist(0, 1), "maximal overlap → zero distance")
	assert.InDelta(t, math.Exp(-1.5), dist(2, 3), 1e-12, "exp(−3·5/10)")
	assert.Equal(t, 1.0, dist(0, 2), "unrelated pair → maximal distance")
}

// TestFromOverlapTable_EmptyAndBounds covers the remaining guards.
func TestFromOverlapTable_EmptyAndBounds(t *testing.T) {
	_, err := distance.FromOverlapTable(core.NewOverlapTable(), nil, distance.DefaultBuilderOptions())
	assert.ErrorIs(t, err, distance.ErrNoStreams)

	tbl := core.NewOverlapTable()
	require.NoError(t, tbl.Set("a", "b", 4))
	m, err := distance.FromOverlapTable(tbl, nil, distance.DefaultBuilderOptions())
	require.NoError(t, err)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, distance.ErrIndexOutOfBounds)
	_, err = m.At(0, -1)
	assert.ErrorIs(t, err, distance.ErrIndexOutOfBounds)
}
