package opt

import (
	"math"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// MayflyAdapter wraps the external mayfly library as the global stochastic
// minimizer.
//
// The exploration strength S in [0, 1] maps monotonically onto the search
// in two ways: the sampled region around x0 widens linearly with S, and
// the population grows linearly from 20 to 60 mayflies. Higher S therefore
// always means more exploration.
type MayflyAdapter struct {
	maxIters    int
	exploration float64
	seed        int64
}

const (
	// mayfly v0.1.0 needs a population of at least 20.
	mayflyMinPop = 20
	mayflyMaxPop = 60

	// Search-region slack around x0, in multiples of the x0 spread.
	regionBase = 1.0
	regionGain = 4.0
)

// NewMayfly creates a global optimizer with the given iteration cap
// (1000 if non-positive), exploration strength (clamped to [0, 1]) and
// RNG seed.
func NewMayfly(maxIters int, exploration float64, seed int64) Optimizer {
	if maxIters <= 0 {
		maxIters = 1000
	}
	return &MayflyAdapter{
		maxIters:    maxIters,
		exploration: math.Max(0, math.Min(1, exploration)),
		seed:        seed,
	}
}

// Minimize runs the seeded swarm search around x0. A solver-internal
// failure is reported as a non-converged result at the starting point
// rather than an error.
func (m *MayflyAdapter) Minimize(objective Objective, x0 []float64) (*Result, error) {
	dim := len(x0)
	lower, upper := m.searchRegion(x0)

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = mayfly.ObjectiveFunction(objective)
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = mayflyMinPop + int(m.exploration*float64(mayflyMaxPop-mayflyMinPop))
	config.LowerBound = lower
	config.UpperBound = upper
	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		x := append([]float64(nil), x0...)
		return &Result{
			X:         x,
			Value:     objective(x),
			Converged: false,
			Method:    "mayfly",
		}, nil
	}

	return &Result{
		X:           result.GlobalBest.Position,
		Value:       result.GlobalBest.Cost,
		Converged:   true,
		Evaluations: m.maxIters * config.NPop,
		Method:      "mayfly",
	}, nil
}

// searchRegion returns scalar bounds covering x0 with slack that grows
// with the exploration strength. The library applies one bound to all
// dimensions, so the region covers the full spread of x0.
func (m *MayflyAdapter) searchRegion(x0 []float64) (float64, float64) {
	lo, hi := x0[0], x0[0]
	for _, v := range x0[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := math.Max(hi-lo, 1)
	slack := regionBase * (1 + regionGain*m.exploration) * span
	return lo - slack, hi + slack
}
