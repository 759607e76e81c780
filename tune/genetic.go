package tune

import (
	"math"
	"math/rand"

	"github.com/MaxHalford/eaopt"
)

// Params are the tunables the search walks.
//
//	MinSamples — density clustering neighbor count, floored at 3.
//	MaxEps     — reachability radius, clamped to [0.1, 1].
//	Spread     — pulse standard deviation in seconds, floored at 1e-5.
type Params struct {
	MinSamples int
	MaxEps     float64
	Spread     float64
}

// ScoreFunc evaluates one parameter set; higher is better. Returning an
// error aborts the whole search.
type ScoreFunc func(p Params) (float64, error)

// HillClimbOptions configures the search.
//
//	Start       — first candidate; zero fields take the defaults
//	              (MinSamples 4, MaxEps 0.1, Spread 0.01).
//	Generations — mutation steps; zero means 20.
//	PopSize     — candidates alive at once; zero means 2.
//	Seed        — deterministic randomness source; zero keeps eaopt's
//	              time-based default.
type HillClimbOptions struct {
	Start       Params
	Generations uint
	PopSize     uint
	Seed        int64
}

// HillClimb searches (MinSamples, MaxEps, Spread) for the best score.
// Mutation-only genetics: each generation nudges one tunable per
// candidate and the hall of fame keeps the best configuration ever
// evaluated, so the result is never worse than Start.
func HillClimb(score ScoreFunc, opts HillClimbOptions) (Params, float64, error) {
	if score == nil {
		return Params{}, 0, ErrNilScore
	}

	start := opts.Start
	if start.MinSamples == 0 {
		start.MinSamples = 4
	}
	if start.MaxEps == 0 {
		start.MaxEps = 0.1
	}
	if start.Spread == 0 {
		start.Spread = 0.01
	}

	cfg := eaopt.NewDefaultGAConfig()
	cfg.Model = eaopt.ModMutationOnly{Strict: false}
	cfg.PopSize = opts.PopSize
	if cfg.PopSize == 0 {
		cfg.PopSize = 2
	}
	cfg.NGenerations = opts.Generations
	if cfg.NGenerations == 0 {
		cfg.NGenerations = 20
	}
	if opts.Seed != 0 {
		cfg.RNG = rand.New(rand.NewSource(opts.Seed))
	}

	ga, err := cfg.NewGA()
	if err != nil {
		return Params{}, 0, err
	}

	first := true
	err = ga.Minimize(func(rng *rand.Rand) eaopt.Genome {
		if first {
			first = false
			return &candidate{p: start, score: score}
		}
		return &candidate{
			p: Params{
				MinSamples: rng.Intn(8) + 3,
				MaxEps:     0.1 + 0.9*rng.Float64(),
				Spread:     start.Spread,
			},
			score: score,
		}
	})
	if err != nil {
		return Params{}, 0, err
	}

	best := ga.HallOfFame[0]
	return best.Genome.(*candidate).p, -best.Fitness, nil
}

// candidate adapts Params to the eaopt.Genome interface. Fitness is the
// negated score, so minimizing fitness maximizes the score.
type candidate struct {
	p     Params
	score ScoreFunc
}

// Evaluate implements eaopt.Genome.
func (c *candidate) Evaluate() (float64, error) {
	s, err := c.score(c.p)
	return -s, err
}

// Mutate nudges exactly one tunable, keeping it inside its legal range.
func (c *candidate) Mutate(rng *rand.Rand) {
	switch rng.Intn(3) {
	case 0:
		step := rng.Intn(2) + 1
		if rng.Intn(2) == 0 {
			c.p.MinSamples += step
		} else {
			c.p.MinSamples -= step
		}
		if c.p.MinSamples < 3 {
			c.p.MinSamples = 3
		}
	case 1:
		step := rng.Float64() / 5 // at most 0.2 per move
		if rng.Intn(2) == 0 {
			c.p.MaxEps += step
		} else {
			c.p.MaxEps -= step
		}
		c.p.MaxEps = math.Min(1, math.Max(0.1, c.p.MaxEps))
	default:
		step := rng.Float64() / 100 // at most 10ms per move
		if rng.Intn(2) == 0 {
			c.p.Spread += step
		} else {
			c.p.Spread -= step
		}
		c.p.Spread = math.Max(1e-5, c.p.Spread)
	}
}

// Crossover does nothing; the search is mutation-only.
func (c *candidate) Crossover(other eaopt.Genome, rng *rand.Rand) {}

// Clone implements eaopt.Genome.
func (c *candidate) Clone() eaopt.Genome {
	return &candidate{p: c.p, score: c.score}
}
