package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeaudit/evotorch/pkg/tensor"
)

func TestNewPopulationValidatesShapes(t *testing.T) {
	values := tensor.Zeros(2, 4, 3)

	tests := []struct {
		name  string
		evals *tensor.Tensor
		ok    bool
	}{
		{"matrix evals", tensor.Zeros(2, 4, 2), true},
		{"scalar evals", tensor.Zeros(2, 4), true},
		{"wrong N", tensor.Zeros(2, 5, 2), false},
		{"wrong batch", tensor.Zeros(3, 4, 2), false},
		{"zero objectives", tensor.Zeros(2, 4, 0), false},
		{"extra axis", tensor.Zeros(2, 4, 2, 2), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPopulation(values, tc.evals)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrShapeMismatch)
			}
		})
	}
}

func TestPopulationAccessors(t *testing.T) {
	values := tensor.Zeros(2, 3, 4, 5)
	evals := tensor.Zeros(2, 3, 4, 2)
	pop, err := NewPopulation(values, evals)
	require.NoError(t, err)

	assert.Equal(t, 4, pop.Size())
	assert.Equal(t, 5, pop.SolutionLength())
	assert.Equal(t, 2, pop.NumObjectives())
	assert.Equal(t, []int{2, 3}, pop.BatchShape())
	assert.Equal(t, 6, pop.BatchSize())

	v3, e3 := pop.Canonical()
	assert.Equal(t, []int{6, 4, 5}, v3.Shape())
	assert.Equal(t, []int{6, 4, 2}, e3.Shape())
}

func TestScalarEvalFormViewedAsOneObjective(t *testing.T) {
	pop, err := NewPopulation(tensor.Zeros(3, 2), tensor.Zeros(3))
	require.NoError(t, err)
	assert.Equal(t, 1, pop.NumObjectives())

	_, e3 := pop.Canonical()
	assert.Equal(t, []int{1, 3, 1}, e3.Shape())

	// Survivorship round-trip keeps the scalar form.
	out, err := pop.WithCanonical(tensor.Zeros(1, 2, 2), tensor.Zeros(1, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, out.Evals().Shape())
}

func TestWithCanonicalRestoresBatchDims(t *testing.T) {
	pop, err := NewPopulation(tensor.Zeros(2, 3, 4, 5), tensor.Zeros(2, 3, 4, 2))
	require.NoError(t, err)

	out, err := pop.WithCanonical(tensor.Zeros(6, 2, 5), tensor.Zeros(6, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 2, 5}, out.Values().Shape())
	assert.Equal(t, []int{2, 3, 2, 2}, out.Evals().Shape())

	_, err = pop.WithCanonical(tensor.Zeros(5, 2, 5), tensor.Zeros(5, 2, 2))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestParseSenses(t *testing.T) {
	senses, err := ParseSenses([]string{"min"}, 3)
	require.NoError(t, err)
	assert.Equal(t, []Sense{Minimize, Minimize, Minimize}, senses)

	senses, err = ParseSenses([]string{"maximize", "MIN"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []Sense{Maximize, Minimize}, senses)

	_, err = ParseSenses([]string{"upwards"}, 1)
	assert.ErrorIs(t, err, ErrInvalidSense)

	_, err = ParseSenses([]string{"min", "max"}, 3)
	assert.ErrorIs(t, err, ErrInvalidSense)
}

func TestSigns(t *testing.T) {
	assert.Equal(t, []float64{1, -1}, Signs([]Sense{Minimize, Maximize}))
}

func TestParamResolve(t *testing.T) {
	vs, err := Scalar(0.5).Resolve(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, vs)

	vs, err = PerSlice([]float64{1, 2, 3}).Resolve(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vs)

	_, err = PerSlice([]float64{1, 2}).Resolve(3)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = Param{}.Resolve(2)
	assert.ErrorIs(t, err, ErrInvalidParam)
}
