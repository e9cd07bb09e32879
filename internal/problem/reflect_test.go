package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectReachesSafeResult(t *testing.T) {
	p, err := Get("boundary")
	require.NoError(t, err)

	var steps []ReflectStep
	result, err := Reflect(p, ReflectOptions{
		MaxSteps:      6,
		MaxIterations: 2000,
		MarginTol:     1e-4,
	}, func(s ReflectStep) {
		steps = append(steps, s)
	})
	require.NoError(t, err)
	require.NotNil(t, result.Final)

	assert.Equal(t, result.Steps, len(steps))
	assert.GreaterOrEqual(t, result.Final.Report.MinMargin(), -1e-3)
	assert.LessOrEqual(t, result.Final.X[0], 0.7+1e-3)

	// Observed lambdas never drop below the starting strength.
	for _, s := range steps {
		assert.GreaterOrEqual(t, s.SafetyLambda, p.SafetyLambda)
	}
}

func TestReflectStopsOnStableStep(t *testing.T) {
	p, err := Get("boundary")
	require.NoError(t, err)

	result, err := Reflect(p, ReflectOptions{
		MaxSteps:      8,
		MaxIterations: 2000,
		MarginTol:     1e-4,
		StepTol:       1e-3,
	}, nil)
	require.NoError(t, err)

	// Warm-started local descent lands on the same point; the loop must
	// notice and stop before exhausting its budget.
	assert.True(t, result.Converged)
	assert.Less(t, result.Steps, 8)
}

func TestReflectDoublesLambdaWhileViolated(t *testing.T) {
	p, err := Get("boundary")
	require.NoError(t, err)

	// A tiny iteration budget keeps the solver from escaping the unsafe
	// start, so the loop has to escalate.
	var lambdas []float64
	_, err = Reflect(p, ReflectOptions{
		SafetyLambda:  1e3,
		MaxSteps:      3,
		MaxIterations: 5,
		MarginTol:     1e-9,
		StepTol:       1e-12,
	}, func(s ReflectStep) {
		lambdas = append(lambdas, s.SafetyLambda)
	})
	require.NoError(t, err)
	require.NotEmpty(t, lambdas)
	assert.InDelta(t, 1e3, lambdas[0], 1e-9)
	for _, l := range lambdas {
		assert.GreaterOrEqual(t, l, 1e3)
	}
}
