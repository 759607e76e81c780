package tune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coflow/core"
)

func TestBuildRegions_Validation(t *testing.T) {
	_, err := BuildRegions(nil, 0, 0)
	require.ErrorIs(t, err, ErrNoRegions)

	_, err = BuildRegions([]Region{{Min: 10, Max: 5}}, 0, 0)
	require.ErrorIs(t, err, ErrBadRegions)

	_, err = BuildRegions([]Region{{Min: 0, Max: 20}, {Min: 10, Max: 30}}, 0, 0)
	require.ErrorIs(t, err, ErrBadRegions)
}

func TestBuildRegions_LeewayRespectsNeighbors(t *testing.T) {
	relative := []Region{
		{Min: 11, Max: 69},
		{Min: 78, Max: 136},
		{Min: 136, Max: 185},
		{Min: 194, Max: 250},
	}
	origin := core.NanosPerSecond // data starts at t=1s

	regions, err := BuildRegions(relative, origin, 3)
	require.NoError(t, err)
	require.Len(t, regions, 4)

	sec := func(s uint64) uint64 { return s*core.NanosPerSecond + origin }

	// First start widens freely, first end stops short of region 2.
	assert.Equal(t, Region{Min: sec(8), Max: sec(72)}, regions[0])
	// Region 2 ends exactly where region 3 begins: no gap to widen into.
	assert.Equal(t, Region{Min: sec(75), Max: sec(136)}, regions[1])
	assert.Equal(t, Region{Min: sec(136), Max: sec(188)}, regions[2])
	// Last end widens freely.
	assert.Equal(t, Region{Min: sec(191), Max: sec(253)}, regions[3])
}

func TestBuildRegions_LeewayFloorsAtZero(t *testing.T) {
	regions, err := BuildRegions([]Region{{Min: 2, Max: 10}}, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), regions[0].Min)
	assert.Equal(t, 15*core.NanosPerSecond, regions[0].Max)
}

func TestRegionOf(t *testing.T) {
	regions := []Region{
		{Min: 100, Max: 200},
		{Min: 300, Max: 400},
	}

	tests := []struct {
		name     string
		earliest uint64
		want     float64
	}{
		{"before first region", 50, 0.5},
		{"inside first region", 150, 1},
		{"on first region upper bound", 200, 1},
		{"between regions", 250, 1.5},
		{"inside second region", 300, 2},
		{"after last region", 500, 2.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RegionOf(tc.earliest, regions))
		})
	}
}
