package tune

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHillClimb_NilScore(t *testing.T) {
	_, _, err := HillClimb(nil, HillClimbOptions{})
	require.ErrorIs(t, err, ErrNilScore)
}

func TestHillClimb_NeverWorseThanStart(t *testing.T) {
	// Unimodal landscape peaking at MaxEps 0.5.
	score := func(p Params) (float64, error) {
		return 1 - math.Abs(p.MaxEps-0.5), nil
	}

	start := Params{MinSamples: 4, MaxEps: 0.1, Spread: 0.01}
	startScore, err := score(start)
	require.NoError(t, err)

	best, bestScore, err := HillClimb(score, HillClimbOptions{
		Start:       start,
		Generations: 30,
		Seed:        42,
	})
	require.NoError(t, err)

	// The hall of fame keeps the best candidate ever evaluated, which
	// includes the start itself.
	assert.GreaterOrEqual(t, bestScore, startScore)
	assert.GreaterOrEqual(t, best.MinSamples, 3)
	assert.GreaterOrEqual(t, best.MaxEps, 0.1)
	assert.LessOrEqual(t, best.MaxEps, 1.0)
	assert.GreaterOrEqual(t, best.Spread, 1e-5)
}

func TestHillClimb_Deterministic(t *testing.T) {
	score := func(p Params) (float64, error) {
		return 1 - math.Abs(p.MaxEps-0.5), nil
	}
	opts := HillClimbOptions{Generations: 10, Seed: 7}

	p1, s1, err := HillClimb(score, opts)
	require.NoError(t, err)
	p2, s2, err := HillClimb(score, opts)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
}

func TestHillClimb_ScoreErrorAborts(t *testing.T) {
	boom := errors.New("pipeline exploded")
	score := func(p Params) (float64, error) { return 0, boom }

	_, _, err := HillClimb(score, HillClimbOptions{Generations: 5, Seed: 1})
	require.Error(t, err)
}

func TestCandidate_MutateStaysInRange(t *testing.T) {
	// Drive many mutations through one candidate and check every
	// tunable stays inside its legal range.
	c := &candidate{p: Params{MinSamples: 3, MaxEps: 0.1, Spread: 0.01}}
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 1000; i++ {
		c.Mutate(rng)
		assert.GreaterOrEqual(t, c.p.MinSamples, 3)
		assert.GreaterOrEqual(t, c.p.MaxEps, 0.1)
		assert.LessOrEqual(t, c.p.MaxEps, 1.0)
		assert.GreaterOrEqual(t, c.p.Spread, 1e-5)
	}
}

func TestCandidate_CloneIsIndependent(t *testing.T) {
	c := &candidate{p: Params{MinSamples: 5, MaxEps: 0.4, Spread: 0.02}}
	clone := c.Clone().(*candidate)

	clone.p.MinSamples = 9
	assert.Equal(t, 5, c.p.MinSamples)
	assert.Equal(t, 0.4, clone.p.MaxEps)
}
