package problem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chris4081/maat-core/internal/maat"
)

const wardsYAML = `name: wards-linear
description: linear rendition of the ward allocation problem
x0: [120, 20, 10]
safetyLambda: 1e6
objective:
  - name: LivesSaved
    weight: 1
    coefs: [-5, -3, -4]
constraints:
  - name: FairnessWard0
    offset: -50
    coefs: [1, 0, 0]
  - name: FairnessWard1
    offset: -50
    coefs: [0, 1, 0]
  - name: FairnessWard2
    offset: -50
    coefs: [0, 0, 1]
  - name: TotalCapacity
    offset: 200
    coefs: [-1, -1, -1]
`

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLinear(t *testing.T) {
	p, err := LoadLinear(writeTempYAML(t, wardsYAML))
	require.NoError(t, err)

	assert.Equal(t, "wards-linear", p.Name)
	assert.Equal(t, []float64{120, 20, 10}, p.X0)
	assert.InDelta(t, 1e6, p.SafetyLambda, 1e-9)

	// Margins mirror the hand-coded wards problem.
	report := p.ConstraintReport([]float64{100, 50, 50})
	assert.Equal(t, maat.StatusOK, report.Status)
	require.Len(t, report.Entries, 4)
	assert.InDelta(t, 50, report.Entries[0].Margin, 1e-9)
	assert.InDelta(t, 0, report.Entries[3].Margin, 1e-9)

	fields := p.FieldReport([]float64{100, 50, 50})
	require.Len(t, fields, 1)
	assert.InDelta(t, -850, fields[0].Weighted, 1e-9)
}

func TestLoadLinearMissingFile(t *testing.T) {
	_, err := LoadLinear(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLinearSpecValidation(t *testing.T) {
	cases := []struct {
		name string
		spec LinearSpec
	}{
		{"missing name", LinearSpec{X0: []float64{1}}},
		{"missing x0", LinearSpec{Name: "p"}},
		{"objective dim mismatch", LinearSpec{
			Name: "p",
			X0:   []float64{1, 2},
			Objective: []LinearTerm{
				{Name: "o", Coefs: []float64{1}},
			},
		}},
		{"constraint dim mismatch", LinearSpec{
			Name: "p",
			X0:   []float64{1, 2},
			Constraints: []LinearMargin{
				{Name: "c", Coefs: []float64{1, 2, 3}},
			},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.spec.Problem()
			require.Error(t, err)
		})
	}
}

func TestLinearSpecDefaults(t *testing.T) {
	spec := LinearSpec{
		Name: "defaults",
		X0:   []float64{0},
		Objective: []LinearTerm{
			{Name: "o", Coefs: []float64{2}},
		},
	}

	p, err := spec.Problem()
	require.NoError(t, err)

	// Weight defaults to 1, lambda to 1e6.
	fields := p.FieldReport([]float64{3})
	assert.InDelta(t, 6, fields[0].Weighted, 1e-12)
	assert.InDelta(t, 1e6, p.SafetyLambda, 1e-9)
}
