package opt

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// NelderMeadAdapter wraps gonum's derivative-free simplex method as the
// local minimizer. The search is unconstrained: the adapter supplies no
// bounds, and callers that want bounding express it as a constraint.
type NelderMeadAdapter struct {
	maxIters int
}

// NewNelderMead creates a local minimizer capped at maxIters major
// iterations (1000 if non-positive).
func NewNelderMead(maxIters int) Optimizer {
	if maxIters <= 0 {
		maxIters = 1000
	}
	return &NelderMeadAdapter{maxIters: maxIters}
}

// Minimize runs the local descent from x0. Budget exhaustion is reported
// via Result.Converged, not as an error.
func (n *NelderMeadAdapter) Minimize(objective Objective, x0 []float64) (*Result, error) {
	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{MajorIterations: n.maxIters}

	start := append([]float64(nil), x0...)
	res, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{})
	if res == nil {
		if err != nil {
			return nil, fmt.Errorf("nelder-mead: %w", err)
		}
		return nil, fmt.Errorf("nelder-mead: solver returned no result")
	}

	return &Result{
		X:           res.X,
		Value:       res.F,
		Converged:   err == nil && statusConverged(res.Status),
		Evaluations: res.FuncEvaluations,
		Method:      "nelder-mead",
	}, nil
}

func statusConverged(s optimize.Status) bool {
	switch s {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	}
	return false
}
