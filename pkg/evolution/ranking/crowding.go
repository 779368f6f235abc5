package ranking

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// CrowdingDistances computes the NSGA-II diversity score for every
// candidate, per front and per batch slice. The evaluation tensor has
// shape [...batch, N, M], ranks [...batch, N] (as produced by FrontRanks),
// and the result [...batch, N]. Distances are comparable only among
// candidates sharing a front rank in the same slice.
//
// For each objective, the members of a front are sorted by value; the two
// extremes receive an infinite contribution and each interior member
// accumulates its neighbor gap divided by the objective's span over the
// front. An objective whose span is zero contributes nothing. Fronts of at
// most two members are entirely boundary and score +Inf. The score is
// direction-symmetric, so the senses only undergo validation here.
//
// Single-objective callers should note that the selector never consults
// this metric when M == 1; it falls back to raw objective order (see
// TakeBest).
func CrowdingDistances(evals *tensor.Tensor, ranks *tensor.IntTensor, senses []evolution.Sense) (*tensor.Tensor, error) {
	ev3, _, err := canonEvals(evals, senses)
	if err != nil {
		return nil, err
	}
	shape := evals.Shape()
	if ranks == nil || !slices.Equal(ranks.Shape(), shape[:len(shape)-1]) {
		return nil, fmt.Errorf("%w: rank tensor must have shape %v", evolution.ErrShapeMismatch, shape[:len(shape)-1])
	}

	dist := tensor.Zeros(shape[:len(shape)-1]...)
	d2, _, err := dist.Canon(1)
	if err != nil {
		return nil, err
	}
	r2, _, err := ranks.Canon(1)
	if err != nil {
		return nil, err
	}

	for b := 0; b < ev3.Dim(0); b++ {
		for _, front := range groupByRank(r2.Row(b)) {
			frontCrowding(ev3, b, front, d2.Row(b))
		}
	}
	return dist, nil
}

// groupByRank collects candidate indices per front rank, in ascending
// index order within each front.
func groupByRank(ranks []int) [][]int {
	maxRank := -1
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	fronts := make([][]int, maxRank+1)
	for i, r := range ranks {
		fronts[r] = append(fronts[r], i)
	}
	return fronts
}

// frontCrowding writes the crowding distance of one front's members into
// dist, which is indexed by candidate.
func frontCrowding(ev3 *tensor.Tensor, b int, front []int, dist []float64) {
	for _, i := range front {
		if hasNaN(ev3.Row(b, i)) {
			// A NaN front has no usable spread; leave the zero scores so
			// selection falls back to index order.
			return
		}
	}
	if len(front) <= 2 {
		for _, i := range front {
			dist[i] = math.Inf(1)
		}
		return
	}

	m := ev3.Dim(2)
	vals := make([]float64, len(front))
	for obj := 0; obj < m; obj++ {
		for k, i := range front {
			vals[k] = ev3.At(b, i, obj)
		}
		order := tensor.Argsort(vals)
		span := floats.Max(vals) - floats.Min(vals)
		if span == 0 {
			continue
		}
		dist[front[order[0]]] += math.Inf(1)
		dist[front[order[len(order)-1]]] += math.Inf(1)
		for k := 1; k < len(order)-1; k++ {
			dist[front[order[k]]] += (vals[order[k+1]] - vals[order[k-1]]) / span
		}
	}
}
