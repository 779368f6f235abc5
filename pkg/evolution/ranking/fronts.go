package ranking

import (
	"slices"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// Fronts partitions every batch slice of a [...batch, N, M] evaluation
// tensor into Pareto fronts using fast non-dominated sort. The result is
// indexed [slice][front][member], where slice runs over the flattened batch
// and members are candidate indices in ascending order. Slices may have
// different front counts. NaN-valued candidates form a single trailing
// front of their slice.
func Fronts(evals *tensor.Tensor, senses []evolution.Sense) ([][][]int, error) {
	ev3, signs, err := canonEvals(evals, senses)
	if err != nil {
		return nil, err
	}
	out := make([][][]int, ev3.Dim(0))
	for b := range out {
		out[b] = sliceFronts(ev3, b, signs)
	}
	return out, nil
}

// FrontRanks assigns every candidate its front index: 0 for the
// non-dominated front, increasing for successively dominated layers. Ranks
// are contiguous from 0 within each batch slice, and every candidate
// receives exactly one rank. The input has shape [...batch, N, M] and the
// result [...batch, N].
func FrontRanks(evals *tensor.Tensor, senses []evolution.Sense) (*tensor.IntTensor, error) {
	ev3, signs, err := canonEvals(evals, senses)
	if err != nil {
		return nil, err
	}

	shape := evals.Shape()
	ranks := tensor.ZerosInt(shape[:len(shape)-1]...)
	r2, _, err := ranks.Canon(1)
	if err != nil {
		return nil, err
	}
	for b := 0; b < ev3.Dim(0); b++ {
		row := r2.Row(b)
		for rank, front := range sliceFronts(ev3, b, signs) {
			for _, i := range front {
				row[i] = rank
			}
		}
	}
	return ranks, nil
}

// sliceFronts peels fronts off one batch slice: front 0 is the set with
// domination count 0; removing it promotes every candidate dominated only
// by front-0 members, and so on until the slice is exhausted.
func sliceFronts(ev3 *tensor.Tensor, b int, signs []float64) [][]int {
	n := ev3.Dim(1)
	nan := make([]bool, n)
	nanCount := 0
	for i := 0; i < n; i++ {
		nan[i] = hasNaN(ev3.Row(b, i))
		if nan[i] {
			nanCount++
		}
	}

	dominated := make([][]int, n)
	domCount := make([]int, n)
	for i := 0; i < n; i++ {
		if nan[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if i == j || nan[j] {
				continue
			}
			if dominatesSigned(ev3.Row(b, i), ev3.Row(b, j), signs) {
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			}
		}
	}

	var fronts [][]int
	var current []int
	for i := 0; i < n; i++ {
		if !nan[i] && domCount[i] == 0 {
			current = append(current, i)
		}
	}

	for len(current) > 0 {
		fronts = append(fronts, current)
		var next []int
		for _, i := range current {
			for _, j := range dominated[i] {
				domCount[j]--
				if domCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		slices.Sort(next) // keep members in ascending index order
		current = next
	}

	if nanCount > 0 {
		trailing := make([]int, 0, nanCount)
		for i := 0; i < n; i++ {
			if nan[i] {
				trailing = append(trailing, i)
			}
		}
		fronts = append(fronts, trailing)
	}
	return fronts
}
