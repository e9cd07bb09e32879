package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMayflyAdapterOnSphere(t *testing.T) {
	optimizer := NewMayfly(200, 0.5, 42)

	// x0 off-center; the search region derived from it covers the origin.
	res, err := optimizer.Minimize(sphere, []float64{2, 2, 2})
	require.NoError(t, err)
	require.Len(t, res.X, 3)

	assert.Less(t, res.Value, 0.1)
	for i, v := range res.X {
		assert.InDelta(t, 0, v, 1.0, "coordinate %d", i)
	}
	assert.Equal(t, "mayfly", res.Method)
}

func TestMayflyAdapterDeterministic(t *testing.T) {
	first, err := NewMayfly(50, 0.2, 123).Minimize(sphere, []float64{1, -1})
	require.NoError(t, err)

	second, err := NewMayfly(50, 0.2, 123).Minimize(sphere, []float64{1, -1})
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.X, second.X)
}

func TestMayflySearchRegionWidensWithExploration(t *testing.T) {
	x0 := []float64{0.5}

	var prevWidth float64
	for i, s := range []float64{0, 0.25, 0.5, 0.75, 1} {
		adapter := NewMayfly(10, s, 1).(*MayflyAdapter)
		lo, hi := adapter.searchRegion(x0)

		assert.Less(t, lo, x0[0])
		assert.Greater(t, hi, x0[0])

		width := hi - lo
		if i > 0 {
			assert.Greater(t, width, prevWidth, "exploration %g must widen the region", s)
		}
		prevWidth = width
	}
}

func TestMayflyRegionCoversSpreadOfStart(t *testing.T) {
	adapter := NewMayfly(10, 0, 1).(*MayflyAdapter)

	lo, hi := adapter.searchRegion([]float64{120, 20, 10})
	assert.Less(t, lo, 10.0)
	assert.Greater(t, hi, 120.0)
}

func TestMayflyExplorationClamped(t *testing.T) {
	adapter := NewMayfly(10, 7.5, 1).(*MayflyAdapter)
	assert.InDelta(t, 1.0, adapter.exploration, 1e-12)

	adapter = NewMayfly(10, -3, 1).(*MayflyAdapter)
	assert.Zero(t, adapter.exploration)
}
