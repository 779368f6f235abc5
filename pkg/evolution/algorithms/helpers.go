package algorithms

import (
	"fmt"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/evolution/ranking"
)

// ParetoFront extracts the objective points of the first non-dominated
// front of one batch slice, for reporting or plotting.
func ParetoFront(pop evolution.Population, senses []evolution.Sense, slice int) ([][]float64, error) {
	if slice < 0 || slice >= pop.BatchSize() {
		return nil, fmt.Errorf("%w: batch slice %d of %d", evolution.ErrShapeMismatch, slice, pop.BatchSize())
	}
	_, evals := pop.Canonical()
	fronts, err := ranking.Fronts(evals, senses)
	if err != nil {
		return nil, err
	}
	if len(fronts[slice]) == 0 {
		return nil, fmt.Errorf("%w: batch slice %d holds no candidates", evolution.ErrShapeMismatch, slice)
	}
	first := fronts[slice][0]
	points := make([][]float64, len(first))
	for i, idx := range first {
		row := evals.Row(slice, idx)
		points[i] = append([]float64(nil), row...)
	}
	return points, nil
}
