// Package problem bundles named, ready-to-search optimization problems:
// a state mapping, an assembled engine, and default search parameters.
//
// The engine is generic over its state type; a Problem erases that type
// behind closures so registries, the CLI, and the job server can handle
// every problem uniformly.
package problem

import (
	"fmt"
	"sort"

	"github.com/Chris4081/maat-core/internal/maat"
)

// Problem is a named search problem with defaults. Zero-value X0 or
// SafetyLambda in caller options fall back to these.
type Problem struct {
	Name         string
	Description  string
	X0           []float64
	SafetyLambda float64

	seek   func(x0 []float64, opts maat.SeekOptions) (*maat.SeekResult, error)
	report func(x []float64) maat.ConstraintReport
	fields func(x []float64) []maat.FieldValue
}

// Bind wraps an engine and its state function into a Problem.
func Bind[S any](name, description string, eng *maat.Engine[S], stateFn func([]float64) S, x0 []float64, safetyLambda float64) *Problem {
	return &Problem{
		Name:         name,
		Description:  description,
		X0:           x0,
		SafetyLambda: safetyLambda,
		seek: func(start []float64, opts maat.SeekOptions) (*maat.SeekResult, error) {
			return eng.Seek(stateFn, start, opts)
		},
		report: func(x []float64) maat.ConstraintReport {
			return eng.ConstraintReport(stateFn(x))
		},
		fields: func(x []float64) []maat.FieldValue {
			return eng.FieldReport(stateFn(x))
		},
	}
}

// Seek runs one search from x0 (the problem default when nil).
// A zero SafetyLambda in opts is replaced by the problem default.
func (p *Problem) Seek(x0 []float64, opts maat.SeekOptions) (*maat.SeekResult, error) {
	if x0 == nil {
		x0 = p.X0
	}
	if opts.SafetyLambda == 0 {
		opts.SafetyLambda = p.SafetyLambda
	}
	return p.seek(x0, opts)
}

// ConstraintReport evaluates the problem's constraints at x.
func (p *Problem) ConstraintReport(x []float64) maat.ConstraintReport {
	return p.report(x)
}

// FieldReport evaluates the problem's fields at x.
func (p *Problem) FieldReport(x []float64) []maat.FieldValue {
	return p.fields(x)
}

var builtins = map[string]func() *Problem{
	"boundary": Boundary,
	"relief":   Relief,
	"wards":    Wards,
}

// Get returns a fresh instance of a built-in problem by name.
func Get(name string) (*Problem, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return ctor(), nil
}

// Names lists the built-in problem names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
