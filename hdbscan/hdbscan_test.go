package hdbscan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoTriples is a hand-checkable instance: items 0..2 form a tight
// group (pairwise 0.1), items 3..5 a slightly looser one (pairwise
// 0.15), and the groups sit far apart (pairwise 1.0).
func twoTriples() func(i, j int) float64 {
	return func(i, j int) float64 {
		switch {
		case i == j:
			return 0
		case i < 3 && j < 3:
			return 0.1
		case i >= 3 && j >= 3:
			return 0.15
		default:
			return 1
		}
	}
}

func TestRun_Validation(t *testing.T) {
	dist := twoTriples()

	tests := []struct {
		name string
		n    int
		dist func(i, j int) float64
		opts Options
		want error
	}{
		{"no items", 0, dist, DefaultOptions(2), ErrNoItems},
		{"negative items", -1, dist, DefaultOptions(2), ErrNoItems},
		{"nil distance", 6, nil, DefaultOptions(2), ErrNilDistance},
		{"cluster size one", 6, dist, DefaultOptions(1), ErrBadMinClusterSize},
		{"negative min samples", 6, dist, Options{MinClusterSize: 2, MinSamples: -1}, ErrBadMinSamples},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Run(tc.n, tc.dist, tc.opts)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, res)
		})
	}
}

func TestRun_TwoClusters(t *testing.T) {
	res, err := Run(6, twoTriples(), DefaultOptions(2))
	require.NoError(t, err)

	require.Len(t, res.Labels, 6)
	assert.Equal(t, res.Labels[0], res.Labels[1])
	assert.Equal(t, res.Labels[0], res.Labels[2])
	assert.Equal(t, res.Labels[3], res.Labels[4])
	assert.Equal(t, res.Labels[3], res.Labels[5])
	assert.NotEqual(t, res.Labels[0], res.Labels[3])
	for _, l := range res.Labels {
		assert.NotEqual(t, Noise, l)
	}

	// Every member persisted to its cluster's densest level.
	for _, p := range res.Probabilities {
		assert.Equal(t, 1.0, p)
	}

	// Tight group: three members each living from λ=1 (the split) to
	// λ=1/0.1; loose group analogously with λ=1/0.15.
	require.Len(t, res.Stabilities, 2)
	assert.InDelta(t, 3*(1/0.1-1), res.Stabilities[res.Labels[0]], 1e-9)
	assert.InDelta(t, 3*(1/0.15-1), res.Stabilities[res.Labels[3]], 1e-9)
}

func TestRun_OutlierBecomesNoise(t *testing.T) {
	base := twoTriples()
	// Item 6 sits far from both groups.
	dist := func(i, j int) float64 {
		if i == 6 || j == 6 {
			if i == j {
				return 0
			}
			return 5
		}
		return base(i, j)
	}

	res, err := Run(7, dist, DefaultOptions(2))
	require.NoError(t, err)

	assert.Equal(t, Noise, res.Labels[6])
	assert.Equal(t, 0.0, res.Probabilities[6])

	assert.Equal(t, res.Labels[0], res.Labels[2])
	assert.Equal(t, res.Labels[3], res.Labels[5])
	assert.NotEqual(t, res.Labels[0], res.Labels[3])
}

func TestRun_Deterministic(t *testing.T) {
	first, err := Run(6, twoTriples(), DefaultOptions(2))
	require.NoError(t, err)
	second, err := Run(6, twoTriples(), DefaultOptions(2))
	require.NoError(t, err)

	assert.Equal(t, first.Labels, second.Labels)
	assert.Equal(t, first.Probabilities, second.Probabilities)
	assert.Equal(t, first.Stabilities, second.Stabilities)
}

func TestRun_SingleItem(t *testing.T) {
	res, err := Run(1, func(i, j int) float64 { return 0 }, DefaultOptions(2))
	require.NoError(t, err)

	assert.Equal(t, []int{Noise}, res.Labels)
	assert.Equal(t, []float64{0}, res.Probabilities)
	assert.Empty(t, res.Stabilities)
}

func TestRun_TooFewNeighborsAllNoise(t *testing.T) {
	// Two items with default options: MinSamples falls back to
	// MinClusterSize 2, but each item has only one neighbor, so no core
	// distance is defined anywhere. Degenerate but valid: everything is
	// noise, nothing panics.
	dist := func(i, j int) float64 {
		if i == j {
			return 0
		}
		return 0.3
	}

	res, err := Run(2, dist, DefaultOptions(2))
	require.NoError(t, err)

	assert.Equal(t, []int{Noise, Noise}, res.Labels)
	assert.Equal(t, []float64{0, 0}, res.Probabilities)
	assert.Empty(t, res.Stabilities)
}

func TestRun_PairBelowMinClusterSizeIsNoise(t *testing.T) {
	// Two items cannot satisfy MinClusterSize 3.
	dist := func(i, j int) float64 {
		if i == j {
			return 0
		}
		return 0.2
	}

	res, err := Run(2, dist, Options{MinClusterSize: 3, MinSamples: 1})
	require.NoError(t, err)

	assert.Equal(t, []int{Noise, Noise}, res.Labels)
}

func TestRun_ZeroDistancesStayFinite(t *testing.T) {
	// Duplicate items produce zero merge distances; stability must stay
	// NaN-free and the grouping intact.
	dist := func(i, j int) float64 {
		ga, gb := i < 3, j < 3
		switch {
		case i == j:
			return 0
		case ga == gb:
			return 0
		default:
			return 1
		}
	}

	res, err := Run(6, dist, DefaultOptions(2))
	require.NoError(t, err)

	assert.Equal(t, res.Labels[0], res.Labels[2])
	assert.Equal(t, res.Labels[3], res.Labels[5])
	assert.NotEqual(t, res.Labels[0], res.Labels[3])
	for l, s := range res.Stabilities {
		assert.False(t, math.IsNaN(s), "label %d", l)
	}
}
