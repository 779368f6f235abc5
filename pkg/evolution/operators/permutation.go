package operators

import (
	"math/rand/v2"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// CosynePermutation shuffles, column by column, the values of a decision
// variable across the population of each batch slice. Each column is
// permuted with the given probability, which accepts a per-slice vector.
// The multiset of values in every column is preserved; only their
// assignment to candidates changes.
func CosynePermutation(rng *rand.Rand, values *tensor.Tensor, prob evolution.Param) (*tensor.Tensor, error) {
	v3, err := canonValues(values)
	if err != nil {
		return nil, err
	}
	b, n, l := v3.Dim(0), v3.Dim(1), v3.Dim(2)
	probs, err := prob.Resolve(b)
	if err != nil {
		return nil, err
	}

	out := values.Clone()
	o3, _, _ := out.Canon(2)
	col := make([]float64, n)
	for slice := 0; slice < b; slice++ {
		for j := 0; j < l; j++ {
			if rng.Float64() >= probs[slice] {
				continue
			}
			perm := rng.Perm(n)
			for i := 0; i < n; i++ {
				col[i] = o3.At(slice, perm[i], j)
			}
			for i := 0; i < n; i++ {
				o3.Set(col[i], slice, i, j)
			}
		}
	}
	return out, nil
}
