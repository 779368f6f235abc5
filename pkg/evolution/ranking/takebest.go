package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// TakeBest truncates an extended population to exactly k survivors per
// batch slice. Fronts are consumed in rank order; when a front must be
// split, its members are ordered by descending crowding distance if
// crowdSort is true, or by original index otherwise. Survivors are returned
// re-sorted into that front-then-crowding order even when k equals the
// population size, so callers relying on the output order (tournament
// operators in particular) see best-first candidates.
//
// With a single objective the crowding formula is never applied: the slice
// is ordered by raw objective value under its sense, with original index as
// the stable tie-break. This branch produces the same survivors, in the
// same order, as the multi-objective path run with M == 1.
//
// k larger than the population size is a contract violation and returns
// ErrTruncationOverflow; the target is never silently clamped.
func TakeBest(pop evolution.Population, k int, senses []evolution.Sense, crowdSort bool) (evolution.Population, error) {
	m := pop.NumObjectives()
	norm, err := evolution.NormalizeSenses(senses, m)
	if err != nil {
		return evolution.Population{}, err
	}
	if k < 0 {
		return evolution.Population{}, fmt.Errorf("%w: negative survivor count %d", evolution.ErrInvalidParam, k)
	}
	if k > pop.Size() {
		return evolution.Population{}, fmt.Errorf("%w: want %d of %d", evolution.ErrTruncationOverflow, k, pop.Size())
	}

	vals3, ev3 := pop.Canonical()
	signs := evolution.Signs(norm)
	b := pop.BatchSize()

	indices := make([][]int, b)
	for i := 0; i < b; i++ {
		var order []int
		if m == 1 {
			order = singleObjectiveOrder(ev3, i, signs[0])
		} else {
			order = frontCrowdingOrder(ev3, i, signs, crowdSort)
		}
		indices[i] = order[:k]
	}

	outVals, err := tensor.Gather(vals3, indices)
	if err != nil {
		return evolution.Population{}, err
	}
	outEvals, err := tensor.Gather(ev3, indices)
	if err != nil {
		return evolution.Population{}, err
	}
	return pop.WithCanonical(outVals, outEvals)
}

// singleObjectiveOrder sorts one slice best-first by its sole objective,
// with NaN values last and original index as the stable tie-break.
func singleObjectiveOrder(ev3 *tensor.Tensor, b int, sign float64) []int {
	n := ev3.Dim(1)
	keys := make([]float64, n)
	nan := make([]bool, n)
	for i := 0; i < n; i++ {
		v := ev3.At(b, i, 0)
		nan[i] = math.IsNaN(v)
		keys[i] = v * sign
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		i, j := order[x], order[y]
		if nan[i] != nan[j] {
			return !nan[i]
		}
		if nan[i] {
			return false
		}
		return keys[i] < keys[j]
	})
	return order
}

// frontCrowdingOrder sorts one slice into front rank order, with crowding
// distance (descending) or original index breaking ties within a front.
func frontCrowdingOrder(ev3 *tensor.Tensor, b int, signs []float64, crowdSort bool) []int {
	n := ev3.Dim(1)
	order := make([]int, 0, n)
	dist := make([]float64, n)
	for _, front := range sliceFronts(ev3, b, signs) {
		members := append([]int(nil), front...)
		if crowdSort {
			frontCrowding(ev3, b, members, dist)
			sort.SliceStable(members, func(x, y int) bool {
				return dist[members[x]] > dist[members[y]]
			})
		}
		order = append(order, members...)
	}
	return order
}
