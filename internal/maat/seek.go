package maat

import (
	"fmt"

	"github.com/Chris4081/maat-core/internal/opt"
)

// SeekOptions configure one search run. The zero value selects a local
// search with the default iteration budget; SafetyLambda should normally
// be set explicitly.
type SeekOptions struct {
	// SafetyLambda is the global penalty strength applied to squared
	// constraint violations. Passed by value per call; the caller adjusts
	// it between calls, never the engine.
	SafetyLambda float64

	// UseGlobal selects stochastic global search instead of local descent.
	UseGlobal bool

	// Exploration controls how aggressively the global search explores,
	// in [0, 1]. It never enters the objective; it only shapes the
	// solver's sampling. Ignored for local search.
	Exploration float64

	// Seed is handed through unchanged to the global solver's RNG so runs
	// are reproducible. Ignored for local search.
	Seed int64

	// MaxIterations caps the solver; 0 means the default of 1000.
	MaxIterations int
}

// SeekResult wraps the solver's best point together with the constraint
// view at that point.
type SeekResult struct {
	X         []float64        `json:"x"`
	Objective float64          `json:"objective"`
	Converged bool             `json:"converged"`
	Report    ConstraintReport `json:"report"`
	// Solver carries the raw solver diagnostics, opaque to the engine.
	Solver *opt.Result `json:"solver,omitempty"`
}

const defaultMaxIterations = 1000

// Seek minimizes f(x) = Integrate(stateFn(x), SafetyLambda) from x0 using
// the selected external solver, then re-evaluates every constraint at the
// returned point.
//
// Seek blocks for the duration of the solver run and holds no state
// between calls; the recommended reflect pattern (seek, inspect the
// report, raise or relax SafetyLambda, seek again) is a caller-side loop,
// one Seek per step.
func (e *Engine[S]) Seek(stateFn func([]float64) S, x0 []float64, opts SeekOptions) (*SeekResult, error) {
	if len(x0) == 0 {
		return nil, fmt.Errorf("seek: x0 must not be empty")
	}

	maxIters := opts.MaxIterations
	if maxIters <= 0 {
		maxIters = defaultMaxIterations
	}

	objective := func(x []float64) float64 {
		return e.Integrate(stateFn(x), opts.SafetyLambda)
	}

	var optimizer opt.Optimizer
	if opts.UseGlobal {
		optimizer = opt.NewMayfly(maxIters, opts.Exploration, opts.Seed)
	} else {
		optimizer = opt.NewNelderMead(maxIters)
	}

	res, err := optimizer.Minimize(objective, x0)
	if err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	return &SeekResult{
		X:         res.X,
		Objective: res.Value,
		Converged: res.Converged,
		Report:    e.ConstraintReport(stateFn(res.X)),
		Solver:    res,
	}, nil
}
