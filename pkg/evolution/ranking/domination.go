// Package ranking implements the batched multi-objective selection engine:
// pairwise domination counts, Pareto-front partitioning by fast
// non-dominated sort, crowding distances, and front-then-crowding
// truncation selection.
//
// All functions take evaluation tensors in the canonical form
// [...batch, N, M], with the objective axis always present (M == 1 for
// single-objective data). evolution.Population produces that form via
// Canonical, including for populations built with the no-axis
// single-objective evaluation shape.
//
// NaN evaluations are non-comparable: a candidate with a NaN objective
// dominates nothing and is treated as maximally dominated, so it sinks into
// a trailing front and survives truncation only once every comparable
// candidate is exhausted.
package ranking

import (
	"fmt"
	"math"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// Dominates reports whether candidate evaluations a dominate b under the
// given senses: after normalizing every objective to lower-is-better, a is
// no worse than b everywhere and strictly better somewhere. Exactly equal
// rows dominate neither way, and rows containing NaN never dominate and
// are never dominated.
func Dominates(a, b []float64, senses []evolution.Sense) (bool, error) {
	if len(a) != len(b) {
		return false, fmt.Errorf("%w: objective rows of length %d and %d", evolution.ErrShapeMismatch, len(a), len(b))
	}
	senses, err := evolution.NormalizeSenses(senses, len(a))
	if err != nil {
		return false, err
	}
	if hasNaN(a) || hasNaN(b) {
		return false, nil
	}
	return dominatesSigned(a, b, evolution.Signs(senses)), nil
}

func dominatesSigned(a, b, signs []float64) bool {
	better := false
	for m := range a {
		av, bv := a[m]*signs[m], b[m]*signs[m]
		if av > bv {
			return false
		}
		if av < bv {
			better = true
		}
	}
	return better
}

func hasNaN(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// DominationCounts computes, for every candidate, how many other candidates
// in the same batch slice strictly dominate it. The input has shape
// [...batch, N, M] and the result [...batch, N]. Candidates with domination
// count 0 are exactly the best Pareto front of their slice. With M == 1 the
// pairwise definition degenerates to a strict comparison on the single
// objective, so counts equal each candidate's rank minus ties.
//
// A NaN-valued candidate receives a count equal to the number of comparable
// candidates in its slice, placing it behind everything that can be
// compared.
func DominationCounts(evals *tensor.Tensor, senses []evolution.Sense) (*tensor.IntTensor, error) {
	ev3, signs, err := canonEvals(evals, senses)
	if err != nil {
		return nil, err
	}

	shape := evals.Shape()
	counts := tensor.ZerosInt(shape[:len(shape)-1]...)
	c2, _, err := counts.Canon(1)
	if err != nil {
		return nil, err
	}
	for b := 0; b < ev3.Dim(0); b++ {
		sliceDominationCounts(ev3, b, signs, c2.Row(b))
	}
	return counts, nil
}

func sliceDominationCounts(ev3 *tensor.Tensor, b int, signs []float64, out []int) {
	n := ev3.Dim(1)
	nan := make([]bool, n)
	known := 0
	for i := 0; i < n; i++ {
		nan[i] = hasNaN(ev3.Row(b, i))
		if !nan[i] {
			known++
		}
	}
	for i := 0; i < n; i++ {
		if nan[i] {
			out[i] = known
			continue
		}
		for j := 0; j < n; j++ {
			if i == j || nan[j] {
				continue
			}
			if dominatesSigned(ev3.Row(b, j), ev3.Row(b, i), signs) {
				out[i]++
			}
		}
	}
}

// canonEvals validates an evaluation tensor, normalizes the senses against
// its objective axis, and returns the canonical [B, N, M] view with the
// lower-is-better signs.
func canonEvals(evals *tensor.Tensor, senses []evolution.Sense) (*tensor.Tensor, []float64, error) {
	if evals == nil || evals.Dims() < 2 {
		return nil, nil, fmt.Errorf("%w: evaluation tensor must be at least [N, M]", evolution.ErrShapeMismatch)
	}
	m := evals.Dim(evals.Dims() - 1)
	norm, err := evolution.NormalizeSenses(senses, m)
	if err != nil {
		return nil, nil, err
	}
	ev3, _, err := evals.Canon(2)
	if err != nil {
		return nil, nil, err
	}
	return ev3, evolution.Signs(norm), nil
}
