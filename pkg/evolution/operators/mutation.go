package operators

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// GaussianMutation adds zero-mean normal noise to every gene. The standard
// deviation accepts a per-batch-slice vector. Values are clamped to bounds
// when supplied.
func GaussianMutation(rng *rand.Rand, values *tensor.Tensor, stdev evolution.Param, bounds []evolution.Bounds) (*tensor.Tensor, error) {
	v3, err := canonValues(values)
	if err != nil {
		return nil, err
	}
	b, l := v3.Dim(0), v3.Dim(2)
	stdevs, err := stdev.Resolve(b)
	if err != nil {
		return nil, err
	}
	for i, s := range stdevs {
		if s < 0 {
			return nil, fmt.Errorf("%w: negative stdev %v in slice %d", evolution.ErrInvalidParam, s, i)
		}
	}
	if err := checkBounds(bounds, l); err != nil {
		return nil, err
	}

	out := values.Clone()
	o3, _, _ := out.Canon(2)
	for slice := 0; slice < b; slice++ {
		for i := 0; i < v3.Dim(1); i++ {
			row := o3.Row(slice, i)
			for j := range row {
				row[j] += rng.NormFloat64() * stdevs[slice]
				if bounds != nil {
					row[j] = clamp(row[j], bounds[j].L, bounds[j].H)
				}
			}
		}
	}
	return out, nil
}

// PolynomialMutation perturbs each gene with the given per-gene
// probability, scaling the polynomial delta by the variable's bound span.
// Bounds are required since they set the perturbation scale; prob and the
// distribution index eta accept per-batch-slice vectors.
func PolynomialMutation(rng *rand.Rand, values *tensor.Tensor, prob, eta evolution.Param, bounds []evolution.Bounds) (*tensor.Tensor, error) {
	v3, err := canonValues(values)
	if err != nil {
		return nil, err
	}
	b, l := v3.Dim(0), v3.Dim(2)
	probs, err := prob.Resolve(b)
	if err != nil {
		return nil, err
	}
	etas, err := eta.Resolve(b)
	if err != nil {
		return nil, err
	}
	for i, e := range etas {
		if e < 0 {
			return nil, fmt.Errorf("%w: negative mutation eta %v in slice %d", evolution.ErrInvalidParam, e, i)
		}
	}
	if bounds == nil {
		return nil, fmt.Errorf("%w: polynomial mutation requires bounds", evolution.ErrInvalidParam)
	}
	if err := checkBounds(bounds, l); err != nil {
		return nil, err
	}

	out := values.Clone()
	o3, _, _ := out.Canon(2)
	for slice := 0; slice < b; slice++ {
		exp := 1.0 / (etas[slice] + 1.0)
		for i := 0; i < v3.Dim(1); i++ {
			row := o3.Row(slice, i)
			for j := range row {
				if rng.Float64() >= probs[slice] {
					continue
				}
				var delta float64
				if rng.Float64() <= 0.5 {
					delta = math.Pow(2*rng.Float64(), exp) - 1
				} else {
					delta = 1 - math.Pow(2*(1-rng.Float64()), exp)
				}
				row[j] += delta * (bounds[j].H - bounds[j].L)
				row[j] = clamp(row[j], bounds[j].L, bounds[j].H)
			}
		}
	}
	return out, nil
}
