package maat

import "math"

// Field is a named, weighted scalar function over a state.
// Func must be pure and return a finite value for every state the search
// can reach; the engine calls it read-only, once per evaluation.
type Field[S any] struct {
	Name   string
	Weight float64
	Func   func(S) float64
}

// Value returns the weighted contribution of the field at the given state.
func (f Field[S]) Value(state S) float64 {
	return f.Weight * f.Func(state)
}

// Constraint is a named safety margin over a state.
//
// Func must return a value >= 0 when the constraint is satisfied.
// A negative value means the constraint is violated by -value. This sign
// convention must hold for every constraint handed to one engine; the
// engine never inverts it.
//
// Weight scales the squared-violation penalty for this constraint relative
// to the others. A zero Weight is treated as 1 so that plain struct
// literals behave like unweighted constraints.
type Constraint[S any] struct {
	Name   string
	Func   func(S) float64
	Weight float64
}

// Margin evaluates the raw constraint margin at the given state.
func (c Constraint[S]) Margin(state S) float64 {
	return c.Func(state)
}

// Violation returns how far the state is into the unsafe region.
// It is zero whenever the constraint is satisfied, including exactly on
// the boundary.
func (c Constraint[S]) Violation(state S) float64 {
	return math.Max(0, -c.Func(state))
}

// Satisfied reports whether the margin is non-negative at the state.
// The boundary itself counts as satisfied.
func (c Constraint[S]) Satisfied(state S) bool {
	return c.Func(state) >= 0
}

func (c Constraint[S]) penaltyWeight() float64 {
	if c.Weight == 0 {
		return 1
	}
	return c.Weight
}
