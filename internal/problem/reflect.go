package problem

import (
	"fmt"
	"math"

	"github.com/Chris4081/maat-core/internal/maat"
)

// ReflectOptions configure the caller-side reflection loop around Seek.
type ReflectOptions struct {
	// SafetyLambda is the starting penalty strength; the problem default
	// when zero. It is also the floor the loop relaxes back toward.
	SafetyLambda float64

	// X0 overrides the problem's default starting point, e.g. when
	// resuming from a checkpoint.
	X0 []float64

	// MaxSteps caps the loop; 0 means 8.
	MaxSteps int

	// MarginTol is the numeric slack below zero a margin may have before
	// it counts as a violation; 0 means 1e-6.
	MarginTol float64

	// StepTol stops the loop once consecutive best points move less than
	// this far; 0 means 1e-6.
	StepTol float64

	// ExploreFirst runs the first step with global search and every later
	// step with local descent, mirroring explore-then-refine.
	ExploreFirst bool

	Exploration   float64
	Seed          int64
	MaxIterations int
}

// ReflectStep is one observed loop iteration.
type ReflectStep struct {
	Step         int
	SafetyLambda float64
	MinMargin    float64
	Result       *maat.SeekResult
}

// ReflectResult summarizes a finished loop.
type ReflectResult struct {
	Steps        int
	SafetyLambda float64
	Converged    bool
	Final        *maat.SeekResult
}

// Reflect runs the recommended usage pattern around Seek: search, inspect
// the constraint report, double the penalty strength while violated,
// relax it once safe, and re-search from the best point. The engine never
// loops internally; this is a caller of one Seek per step.
//
// observe, if non-nil, is invoked after every step, before the penalty
// adjustment.
func Reflect(p *Problem, opts ReflectOptions, observe func(ReflectStep)) (*ReflectResult, error) {
	lambda := opts.SafetyLambda
	if lambda == 0 {
		lambda = p.SafetyLambda
	}
	floor := lambda

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 8
	}
	marginTol := opts.MarginTol
	if marginTol == 0 {
		marginTol = 1e-6
	}
	stepTol := opts.StepTol
	if stepTol == 0 {
		stepTol = 1e-6
	}

	x0 := opts.X0
	if len(x0) == 0 {
		x0 = p.X0
	}
	x := append([]float64(nil), x0...)
	var last *maat.SeekResult
	converged := false
	steps := 0

	for step := 0; step < maxSteps; step++ {
		res, err := p.Seek(x, maat.SeekOptions{
			SafetyLambda:  lambda,
			UseGlobal:     opts.ExploreFirst && step == 0,
			Exploration:   opts.Exploration,
			Seed:          opts.Seed,
			MaxIterations: opts.MaxIterations,
		})
		if err != nil {
			return nil, fmt.Errorf("reflect step %d: %w", step, err)
		}

		steps = step + 1
		minMargin := res.Report.MinMargin()
		if observe != nil {
			observe(ReflectStep{
				Step:         step,
				SafetyLambda: lambda,
				MinMargin:    minMargin,
				Result:       res,
			})
		}

		if minMargin < -marginTol {
			lambda *= 2
		} else if lambda > floor {
			lambda = math.Max(floor, lambda/1.5)
		}

		if last != nil && stepDistance(last.X, res.X) < stepTol {
			last = res
			converged = true
			break
		}

		last = res
		x = res.X
	}

	return &ReflectResult{
		Steps:        steps,
		SafetyLambda: lambda,
		Converged:    converged,
		Final:        last,
	}, nil
}

func stepDistance(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		d := v - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
