// Package opt adapts external numerical minimizers to one interface.
package opt

// Objective is a scalar function of a parameter vector.
type Objective func(x []float64) float64

// Result holds the outcome of a single optimization run.
type Result struct {
	// X is the best parameter vector found.
	X []float64 `json:"x"`

	// Value is the objective value at X.
	Value float64 `json:"value"`

	// Converged carries the solver's own termination signal. False means
	// the solver stopped on a budget or failed internally; the best point
	// found is still returned.
	Converged bool `json:"converged"`

	// Evaluations counts objective calls, where the solver reports it.
	Evaluations int `json:"evaluations,omitempty"`

	// Method names the solver that produced this result.
	Method string `json:"method"`
}

// Optimizer runs a black-box minimization of an objective from a starting
// point. Implementations are stateless across calls and safe to use from
// multiple goroutines with distinct objectives.
type Optimizer interface {
	Minimize(objective Objective, x0 []float64) (*Result, error)
}
