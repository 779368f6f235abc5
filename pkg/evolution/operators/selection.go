package operators

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/evolution/ranking"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// Tournament draws picks winners per batch slice by k-way tournament. In
// the multi-objective case contestants are compared by front rank, with
// crowding distance breaking rank ties; with a single objective the raw
// value under its sense decides, NaN losing to any number. Winners are
// returned with their evaluations, so offspring of the selected parents
// can be produced directly from the result's Values.
func Tournament(rng *rand.Rand, pop evolution.Population, senses []evolution.Sense, picks, size int) (evolution.Population, error) {
	m := pop.NumObjectives()
	norm, err := evolution.NormalizeSenses(senses, m)
	if err != nil {
		return evolution.Population{}, err
	}
	if picks < 1 {
		return evolution.Population{}, fmt.Errorf("%w: tournament picks %d", evolution.ErrInvalidParam, picks)
	}
	if size < 1 {
		return evolution.Population{}, fmt.Errorf("%w: tournament size %d", evolution.ErrInvalidParam, size)
	}

	vals3, ev3 := pop.Canonical()
	b, n := pop.BatchSize(), pop.Size()
	if n == 0 {
		return evolution.Population{}, fmt.Errorf("%w: empty population", evolution.ErrShapeMismatch)
	}
	signs := evolution.Signs(norm)

	// Precompute the comparison keys for every slice before drawing from
	// the stream.
	better, err := contestantOrder(ev3, norm, signs, m)
	if err != nil {
		return evolution.Population{}, err
	}

	indices := make([][]int, b)
	for slice := 0; slice < b; slice++ {
		row := make([]int, picks)
		for p := 0; p < picks; p++ {
			best := rng.IntN(n)
			for t := 1; t < size; t++ {
				c := rng.IntN(n)
				if better(slice, c, best) {
					best = c
				}
			}
			row[p] = best
		}
		indices[slice] = row
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

// contestantOrder builds the tournament comparison predicate: better(b, i, j)
// reports whether candidate i beats candidate j in slice b.
func contestantOrder(ev3 *tensor.Tensor, senses []evolution.Sense, signs []float64, m int) (func(b, i, j int) bool, error) {
	if m == 1 {
		return func(b, i, j int) bool {
			vi, vj := ev3.At(b, i, 0)*signs[0], ev3.At(b, j, 0)*signs[0]
			if math.IsNaN(vi) {
				return false
			}
			if math.IsNaN(vj) {
				return true
			}
			return vi < vj
		}, nil
	}

	ranks, err := ranking.FrontRanks(ev3, senses)
	if err != nil {
		return nil, err
	}
	dist, err := ranking.CrowdingDistances(ev3, ranks, senses)
	if err != nil {
		return nil, err
	}
	r2, _, err := ranks.Canon(1)
	if err != nil {
		return nil, err
	}
	d2, _, err := dist.Canon(1)
	if err != nil {
		return nil, err
	}
	return func(b, i, j int) bool {
		ri, rj := r2.At(b, i), r2.At(b, j)
		if ri != rj {
			return ri < rj
		}
		return d2.At(b, i) > d2.At(b, j)
	}, nil
}
