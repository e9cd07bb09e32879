package problem

import (
	"math"

	"github.com/Chris4081/maat-core/internal/maat"
)

// ScalarState is the state for the one-dimensional built-in problems.
type ScalarState struct {
	Val        float64
	Dissonance float64
	Complexity float64
}

// Boundary is a quadratic efficiency objective pulled toward a target at
// x = 1 while a safety boundary keeps x <= 0.7. The unconstrained optimum
// sits in the unsafe region, so the penalty term decides the outcome.
func Boundary() *Problem {
	const (
		target   = 1.0
		boundary = 0.7
	)

	stateFn := func(x []float64) ScalarState {
		return ScalarState{Val: x[0]}
	}

	eng := maat.NewEngine(
		[]maat.Field[ScalarState]{
			{Name: "Efficiency", Weight: 1, Func: func(s ScalarState) float64 {
				d := s.Val - target
				return d * d
			}},
		},
		[]maat.Constraint[ScalarState]{
			{Name: "SafetyBoundary", Func: func(s ScalarState) float64 {
				return boundary - s.Val
			}},
		},
	)

	return Bind("boundary",
		"quadratic efficiency target behind a hard safety boundary at x=0.7",
		eng, stateFn, []float64{0.9}, 1e6)
}

// Relief is a multimodal one-dimensional landscape with several local
// minima, a mild complexity field, and a boundary at x = 0.6. Local
// descent from the default start gets trapped; global search finds the
// safe basin.
func Relief() *Problem {
	stateFn := func(x []float64) ScalarState {
		v := x[0]
		dissonance := math.Pow(math.Sin(10*v), 2) + 10*math.Pow(v-0.9, 2) + 3*math.Exp(-15*v)
		return ScalarState{
			Val:        v,
			Dissonance: dissonance,
			Complexity: math.Exp(v),
		}
	}

	eng := maat.NewEngine(
		[]maat.Field[ScalarState]{
			{Name: "Harmony", Weight: 1, Func: func(s ScalarState) float64 {
				return s.Dissonance
			}},
			{Name: "Complexity", Weight: 0.01, Func: func(s ScalarState) float64 {
				return s.Complexity
			}},
		},
		[]maat.Constraint[ScalarState]{
			{Name: "RespectBoundary", Func: func(s ScalarState) float64 {
				return 0.6 - s.Val
			}},
		},
	)

	return Bind("relief",
		"multimodal relief landscape with a respect boundary at x=0.6",
		eng, stateFn, []float64{0.9}, 1e5)
}

// WardState is the state for the ward allocation problem.
type WardState struct {
	Beds  []float64
	Total float64
}

// Wards allocates beds across three wards: maximize lives saved (linear
// gains of 5, 3 and 4 per bed) under a total capacity of 200 and a
// fairness floor of 50 beds per ward. At the optimum the capacity
// constraint binds.
func Wards() *Problem {
	stateFn := func(x []float64) WardState {
		var total float64
		for _, v := range x {
			total += v
		}
		return WardState{Beds: x, Total: total}
	}

	gains := []float64{5, 3, 4}

	eng := maat.NewEngine(
		[]maat.Field[WardState]{
			{Name: "LivesSaved", Weight: 1, Func: func(s WardState) float64 {
				var saved float64
				for i, g := range gains {
					saved += g * s.Beds[i]
				}
				return -saved
			}},
		},
		[]maat.Constraint[WardState]{
			{Name: "FairnessWard0", Func: func(s WardState) float64 { return s.Beds[0] - 50 }},
			{Name: "FairnessWard1", Func: func(s WardState) float64 { return s.Beds[1] - 50 }},
			{Name: "FairnessWard2", Func: func(s WardState) float64 { return s.Beds[2] - 50 }},
			{Name: "TotalCapacity", Func: func(s WardState) float64 { return 200 - s.Total }},
		},
	)

	return Bind("wards",
		"bed allocation across three wards with fairness floors and a shared capacity",
		eng, stateFn, []float64{120, 20, 10}, 1e6)
}
