// Package operators provides the variation and selection operators:
// crossover, mutation, permutation, tournament selection and population
// combination. Every operator is pure with respect to its inputs (results
// are freshly allocated) and the only side effect is consumption of the
// explicit random stream. Argument validation always precedes the first
// draw from the stream, so an error implies the stream was not touched.
//
// Crossover and mutation operate on decision tensors of shape
// [...batch, N, L]; offspring are not evaluated, so no evaluation tensor is
// involved. Selection-aware operators take a whole Population. Stochastic
// hyperparameters are evolution.Param values: a scalar is shared by every
// batch slice, while a vector supplies one value per slice.
package operators

import (
	"fmt"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// canonValues validates a decision tensor and returns its [B, N, L] view.
func canonValues(values *tensor.Tensor) (*tensor.Tensor, error) {
	if values == nil || values.Dims() < 2 {
		return nil, fmt.Errorf("%w: decision tensor must be at least [N, L]", evolution.ErrShapeMismatch)
	}
	v3, _, err := values.Canon(2)
	if err != nil {
		return nil, err
	}
	return v3, nil
}

// canonPairs additionally checks that slices hold an even number of
// parents, which pairwise crossover requires.
func canonPairs(values *tensor.Tensor) (*tensor.Tensor, error) {
	v3, err := canonValues(values)
	if err != nil {
		return nil, err
	}
	if v3.Dim(1)%2 != 0 {
		return nil, fmt.Errorf("%w: crossover needs an even number of parents, got %d", evolution.ErrInvalidParam, v3.Dim(1))
	}
	return v3, nil
}

func checkBounds(bounds []evolution.Bounds, l int) error {
	if bounds == nil {
		return nil
	}
	if len(bounds) != l {
		return fmt.Errorf("%w: %d bounds for %d variables", evolution.ErrInvalidParam, len(bounds), l)
	}
	for i, b := range bounds {
		if b.L > b.H {
			return fmt.Errorf("%w: bounds[%d] has L > H", evolution.ErrInvalidParam, i)
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
