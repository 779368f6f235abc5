// Package evolution defines the batched population container and the shared
// argument conventions (objective senses, hyperparameters, errors) used by
// the ranking engine and the variation operators.
//
// A population pairs a decision tensor of shape [...batch, N, L] with an
// evaluation tensor of shape [...batch, N] (single objective, no objective
// axis) or [...batch, N, M]. Leading batch dimensions index independent
// populations processed in one call. Operators never mutate a population in
// place; every operation returns fresh tensors. The only shared mutable
// state is the explicit *rand.Rand handle stochastic operators receive.
package evolution

import (
	"fmt"
	"slices"

	"github.com/codeaudit/evotorch/pkg/tensor"
)

// Bounds gives the inclusive lower and upper limit of one decision
// variable.
type Bounds struct {
	L float64
	H float64
}

// Population groups a decision tensor with its aligned evaluations.
type Population struct {
	values *tensor.Tensor // [...batch, N, L]
	evals  *tensor.Tensor // [...batch, N] or [...batch, N, M]

	batch       []int
	scalarEvals bool
}

// NewPopulation validates that the evaluation tensor's batch shape and
// population size exactly match the decision tensor's, and remembers
// whether the single-objective no-axis evaluation form was used so results
// mirror it.
func NewPopulation(values, evals *tensor.Tensor) (Population, error) {
	if values == nil || evals == nil {
		return Population{}, fmt.Errorf("%w: nil tensor", ErrShapeMismatch)
	}
	vd := values.Dims()
	if vd < 2 {
		return Population{}, fmt.Errorf("%w: decision tensor must be at least [N, L], got shape %v", ErrShapeMismatch, values.Shape())
	}

	scalar := false
	switch evals.Dims() {
	case vd:
		if evals.Dim(vd-1) < 1 {
			return Population{}, fmt.Errorf("%w: evaluation tensor has no objectives", ErrShapeMismatch)
		}
	case vd - 1:
		scalar = true
	default:
		return Population{}, fmt.Errorf("%w: decision shape %v vs evaluation shape %v", ErrShapeMismatch, values.Shape(), evals.Shape())
	}

	vs, es := values.Shape(), evals.Shape()
	if !slices.Equal(vs[:vd-1], es[:vd-1]) {
		return Population{}, fmt.Errorf("%w: decision shape %v vs evaluation shape %v", ErrShapeMismatch, vs, es)
	}

	return Population{
		values:      values,
		evals:       evals,
		batch:       vs[:vd-2],
		scalarEvals: scalar,
	}, nil
}

// Values returns the decision tensor.
func (p Population) Values() *tensor.Tensor { return p.values }

// Evals returns the evaluation tensor in the form it was supplied.
func (p Population) Evals() *tensor.Tensor { return p.evals }

// Size returns the population size N of each batch slice.
func (p Population) Size() int { return p.values.Dim(p.values.Dims() - 2) }

// SolutionLength returns the decision-vector length L.
func (p Population) SolutionLength() int { return p.values.Dim(p.values.Dims() - 1) }

// NumObjectives returns M, which is 1 for the scalar evaluation form.
func (p Population) NumObjectives() int {
	if p.scalarEvals {
		return 1
	}
	return p.evals.Dim(p.evals.Dims() - 1)
}

// BatchShape returns the leading batch dimensions, possibly empty.
func (p Population) BatchShape() []int { return slices.Clone(p.batch) }

// BatchSize returns the flattened batch size B (1 when there are no batch
// dimensions).
func (p Population) BatchSize() int {
	b := 1
	for _, d := range p.batch {
		b *= d
	}
	return b
}

// Canonical returns three-axis views values [B, N, L] and evals [B, N, M]
// sharing storage with the population. The scalar evaluation form is viewed
// with M == 1, so the ranking engine needs no dimension-count special
// cases.
func (p Population) Canonical() (values, evals *tensor.Tensor) {
	b, n := p.BatchSize(), p.Size()
	values, _, _ = p.values.Canon(2)
	if p.scalarEvals {
		evals, _ = p.evals.Reshape(b, n, 1)
	} else {
		evals, _, _ = p.evals.Canon(2)
	}
	return values, evals
}

// WithCanonical rebuilds a population from canonical [B, K, L] values and
// [B, K, M] evals, restoring this population's batch dimensions and
// evaluation form. K may differ from the source population's N.
func (p Population) WithCanonical(values, evals *tensor.Tensor) (Population, error) {
	if values.Dims() != 3 || evals.Dims() != 3 {
		return Population{}, fmt.Errorf("%w: canonical tensors must have 3 axes", ErrShapeMismatch)
	}
	b := p.BatchSize()
	if values.Dim(0) != b || evals.Dim(0) != b {
		return Population{}, fmt.Errorf("%w: canonical batch %d vs population batch %d", ErrShapeMismatch, values.Dim(0), b)
	}

	vShape := append(p.BatchShape(), values.Dim(1), values.Dim(2))
	v, err := values.Reshape(vShape...)
	if err != nil {
		return Population{}, err
	}

	var e *tensor.Tensor
	if p.scalarEvals {
		if evals.Dim(2) != 1 {
			return Population{}, fmt.Errorf("%w: single-objective population cannot hold %d objectives", ErrShapeMismatch, evals.Dim(2))
		}
		e, err = evals.Reshape(append(p.BatchShape(), evals.Dim(1))...)
	} else {
		e, err = evals.Reshape(append(p.BatchShape(), evals.Dim(1), evals.Dim(2))...)
	}
	if err != nil {
		return Population{}, err
	}
	return NewPopulation(v, e)
}
