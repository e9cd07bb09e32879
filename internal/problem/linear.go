package problem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Chris4081/maat-core/internal/maat"
)

// Point is the state type for linear problems loaded from files.
type Point struct {
	X []float64
}

// LinearTerm is one objective term: weight * (coefs · x).
type LinearTerm struct {
	Name   string    `yaml:"name"`
	Weight float64   `yaml:"weight"`
	Coefs  []float64 `yaml:"coefs"`
}

// LinearMargin is one constraint margin: offset + coefs · x >= 0 when
// satisfied.
type LinearMargin struct {
	Name   string    `yaml:"name"`
	Offset float64   `yaml:"offset"`
	Coefs  []float64 `yaml:"coefs"`
	Weight float64   `yaml:"weight"`
}

// LinearSpec is a linear problem definition. Linear objectives and margins
// are the only family expressible as configuration; everything else needs
// code-level field and constraint functions.
type LinearSpec struct {
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description"`
	X0           []float64      `yaml:"x0"`
	SafetyLambda float64        `yaml:"safetyLambda"`
	Objective    []LinearTerm   `yaml:"objective"`
	Constraints  []LinearMargin `yaml:"constraints"`
}

// Validate checks structural consistency: a name, a start point, and
// coefficient vectors matching its dimension.
func (s *LinearSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("linear spec: name is required")
	}
	if len(s.X0) == 0 {
		return fmt.Errorf("linear spec %s: x0 is required", s.Name)
	}
	dim := len(s.X0)
	for _, t := range s.Objective {
		if len(t.Coefs) != dim {
			return fmt.Errorf("linear spec %s: objective %s has %d coefs, want %d", s.Name, t.Name, len(t.Coefs), dim)
		}
	}
	for _, c := range s.Constraints {
		if len(c.Coefs) != dim {
			return fmt.Errorf("linear spec %s: constraint %s has %d coefs, want %d", s.Name, c.Name, len(c.Coefs), dim)
		}
	}
	return nil
}

// Problem assembles the spec into a searchable Problem.
func (s *LinearSpec) Problem() (*Problem, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	stateFn := func(x []float64) Point {
		return Point{X: x}
	}

	fields := make([]maat.Field[Point], 0, len(s.Objective))
	for _, term := range s.Objective {
		weight := term.Weight
		if weight == 0 {
			weight = 1
		}
		coefs := term.Coefs
		fields = append(fields, maat.Field[Point]{
			Name:   term.Name,
			Weight: weight,
			Func: func(p Point) float64 {
				return dot(coefs, p.X)
			},
		})
	}

	constraints := make([]maat.Constraint[Point], 0, len(s.Constraints))
	for _, margin := range s.Constraints {
		offset := margin.Offset
		coefs := margin.Coefs
		constraints = append(constraints, maat.Constraint[Point]{
			Name:   margin.Name,
			Weight: margin.Weight,
			Func: func(p Point) float64 {
				return offset + dot(coefs, p.X)
			},
		})
	}

	lambda := s.SafetyLambda
	if lambda == 0 {
		lambda = 1e6
	}

	eng := maat.NewEngine(fields, constraints)
	return Bind(s.Name, s.Description, eng, stateFn, s.X0, lambda), nil
}

// LoadLinear reads a LinearSpec from a YAML file and assembles it.
func LoadLinear(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}

	var spec LinearSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse problem file: %w", err)
	}

	return spec.Problem()
}

func dot(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}
