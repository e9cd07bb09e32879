// Package maat assembles weighted scalar fields and penalty-backed
// constraints into a single objective and hands it to an external
// numerical minimizer.
//
// The engine itself is stateless and synchronous: fields and constraints
// are immutable configuration, the penalty strength is passed per call,
// and independent searches may run in parallel.
package maat

// Engine holds the immutable field and constraint configuration for one
// search problem. The state type S is chosen by the caller; field and
// constraint functions are the only code that inspects it.
type Engine[S any] struct {
	Fields      []Field[S]
	Constraints []Constraint[S]
}

// NewEngine creates an engine over the given fields and constraints.
func NewEngine[S any](fields []Field[S], constraints []Constraint[S]) *Engine[S] {
	return &Engine[S]{
		Fields:      fields,
		Constraints: constraints,
	}
}

// Integrate combines all field values and constraint violations into one
// scalar:
//
//	total = Σ weight_i * field_i(state)
//	      + safetyLambda * Σ weight_j * violation_j(state)²
//
// Squaring the violation keeps the penalty differentiable at the boundary
// and growing away from it. With a large enough safetyLambda any violating
// state scores strictly worse than every safe state the fields alone can
// produce; choosing such a lambda is the caller's responsibility.
//
// Non-finite field or constraint values propagate into the result
// unguarded and surface as solver non-convergence.
func (e *Engine[S]) Integrate(state S, safetyLambda float64) float64 {
	var total float64
	for _, f := range e.Fields {
		total += f.Value(state)
	}

	var penalty float64
	for _, c := range e.Constraints {
		v := c.Violation(state)
		penalty += c.penaltyWeight() * v * v
	}

	return total + safetyLambda*penalty
}
