package operators

import (
	"fmt"
	"slices"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// Combine concatenates two populations along the population axis, forming
// the extended parents-plus-offspring population that truncation selection
// consumes. Batch shapes, decision-vector lengths, objective counts and
// evaluation forms must agree; the result mirrors a's evaluation form.
func Combine(a, b evolution.Population) (evolution.Population, error) {
	if !slices.Equal(a.BatchShape(), b.BatchShape()) {
		return evolution.Population{}, fmt.Errorf("%w: batch shapes %v vs %v", evolution.ErrShapeMismatch, a.BatchShape(), b.BatchShape())
	}
	if a.SolutionLength() != b.SolutionLength() {
		return evolution.Population{}, fmt.Errorf("%w: solution lengths %d vs %d", evolution.ErrShapeMismatch, a.SolutionLength(), b.SolutionLength())
	}
	if a.NumObjectives() != b.NumObjectives() {
		return evolution.Population{}, fmt.Errorf("%w: objective counts %d vs %d", evolution.ErrShapeMismatch, a.NumObjectives(), b.NumObjectives())
	}

	av, ae := a.Canonical()
	bv, be := b.Canonical()
	values, err := tensor.Concat(av, bv, 1)
	if err != nil {
		return evolution.Population{}, err
	}
	evals, err := tensor.Concat(ae, be, 1)
	if err != nil {
		return evolution.Population{}, err
	}
	return a.WithCanonical(values, evals)
}
