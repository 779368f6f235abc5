package tensor

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Argsort returns the permutation that sorts xs ascending. The input is not
// modified. Ordering of NaN values is unspecified; callers that care must
// substitute them before sorting.
func Argsort(xs []float64) []int {
	cp := slices.Clone(xs)
	inds := make([]int, len(cp))
	floats.Argsort(cp, inds)
	return inds
}
