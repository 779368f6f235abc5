package operators

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// The crossover operators pair consecutive parents (rows 0 and 1, 2 and 3,
// and so on) within each batch slice and produce an offspring tensor with
// the same shape as the input. Slices must therefore hold an even number
// of parents.

// OnePointCrossover swaps the parent tails after a random cut point,
// independently per pair.
func OnePointCrossover(rng *rand.Rand, values *tensor.Tensor) (*tensor.Tensor, error) {
	v3, err := canonPairs(values)
	if err != nil {
		return nil, err
	}
	out := values.Clone()
	o3, _, _ := out.Canon(2)
	l := v3.Dim(2)
	forEachPair(v3, func(b, i int) {
		p1, p2 := v3.Row(b, i), v3.Row(b, i+1)
		c1, c2 := o3.Row(b, i), o3.Row(b, i+1)
		point := rng.IntN(l)
		copy(c1[:point], p1[:point])
		copy(c1[point:], p2[point:])
		copy(c2[:point], p2[:point])
		copy(c2[point:], p1[point:])
	})
	return out, nil
}

// TwoPointCrossover swaps the segment between two random cut points.
func TwoPointCrossover(rng *rand.Rand, values *tensor.Tensor) (*tensor.Tensor, error) {
	v3, err := canonPairs(values)
	if err != nil {
		return nil, err
	}
	out := values.Clone()
	o3, _, _ := out.Canon(2)
	l := v3.Dim(2)
	forEachPair(v3, func(b, i int) {
		p1, p2 := v3.Row(b, i), v3.Row(b, i+1)
		c1, c2 := o3.Row(b, i), o3.Row(b, i+1)
		lo, hi := rng.IntN(l), rng.IntN(l)
		if lo > hi {
			lo, hi = hi, lo
		}
		for j := 0; j < l; j++ {
			if j >= lo && j < hi {
				c1[j], c2[j] = p2[j], p1[j]
			} else {
				c1[j], c2[j] = p1[j], p2[j]
			}
		}
	})
	return out, nil
}

// MultiPointCrossover alternates parent segments across `points` distinct
// random cut points. points must be at least 1 and less than the
// decision-vector length.
func MultiPointCrossover(rng *rand.Rand, values *tensor.Tensor, points int) (*tensor.Tensor, error) {
	v3, err := canonPairs(values)
	if err != nil {
		return nil, err
	}
	l := v3.Dim(2)
	if points < 1 || points >= l {
		return nil, fmt.Errorf("%w: %d cut points for vectors of length %d", evolution.ErrInvalidParam, points, l)
	}
	out := values.Clone()
	o3, _, _ := out.Canon(2)
	forEachPair(v3, func(b, i int) {
		p1, p2 := v3.Row(b, i), v3.Row(b, i+1)
		c1, c2 := o3.Row(b, i), o3.Row(b, i+1)

		cuts := rng.Perm(l - 1)[:points]
		for k := range cuts {
			cuts[k]++ // cut positions lie strictly inside the vector
		}
		slices.Sort(cuts)

		swap := false
		next := 0
		for j := 0; j < l; j++ {
			if next < len(cuts) && j == cuts[next] {
				swap = !swap
				next++
			}
			if swap {
				c1[j], c2[j] = p2[j], p1[j]
			} else {
				c1[j], c2[j] = p1[j], p2[j]
			}
		}
	})
	return out, nil
}

// UniformCrossover inherits each gene from either parent with equal
// probability.
func UniformCrossover(rng *rand.Rand, values *tensor.Tensor) (*tensor.Tensor, error) {
	v3, err := canonPairs(values)
	if err != nil {
		return nil, err
	}
	out := values.Clone()
	o3, _, _ := out.Canon(2)
	forEachPair(v3, func(b, i int) {
		p1, p2 := v3.Row(b, i), v3.Row(b, i+1)
		c1, c2 := o3.Row(b, i), o3.Row(b, i+1)
		for j := range p1 {
			if rng.Float64() < 0.5 {
				c1[j], c2[j] = p1[j], p2[j]
			} else {
				c1[j], c2[j] = p2[j], p1[j]
			}
		}
	})
	return out, nil
}

// SimulatedBinaryCrossover performs SBX on each pair, gated per pair by the
// crossover rate. Both rate and the distribution index eta accept
// per-batch-slice vectors, so every slice of a batched population can run
// with its own spread. Children are clamped to bounds when supplied.
func SimulatedBinaryCrossover(rng *rand.Rand, values *tensor.Tensor, rate, eta evolution.Param, bounds []evolution.Bounds) (*tensor.Tensor, error) {
	v3, err := canonPairs(values)
	if err != nil {
		return nil, err
	}
	b, l := v3.Dim(0), v3.Dim(2)
	rates, err := rate.Resolve(b)
	if err != nil {
		return nil, err
	}
	etas, err := eta.Resolve(b)
	if err != nil {
		return nil, err
	}
	for i, e := range etas {
		if e < 0 {
			return nil, fmt.Errorf("%w: negative SBX eta %v in slice %d", evolution.ErrInvalidParam, e, i)
		}
	}
	if err := checkBounds(bounds, l); err != nil {
		return nil, err
	}

	out := values.Clone()
	o3, _, _ := out.Canon(2)
	forEachPair(v3, func(slice, i int) {
		p1, p2 := v3.Row(slice, i), v3.Row(slice, i+1)
		c1, c2 := o3.Row(slice, i), o3.Row(slice, i+1)
		if rng.Float64() >= rates[slice] {
			copy(c1, p1)
			copy(c2, p2)
			return
		}
		exp := 1.0 / (etas[slice] + 1.0)
		for j := 0; j < l; j++ {
			var beta float64
			if rng.Float64() <= 0.5 {
				beta = math.Pow(2*rng.Float64(), exp)
			} else {
				beta = math.Pow(1.0/(2*(1.0-rng.Float64())), exp)
			}

			c1[j] = 0.5 * ((1+beta)*p1[j] + (1-beta)*p2[j])
			c2[j] = 0.5 * ((1-beta)*p1[j] + (1+beta)*p2[j])
			if bounds != nil {
				c1[j] = clamp(c1[j], bounds[j].L, bounds[j].H)
				c2[j] = clamp(c2[j], bounds[j].L, bounds[j].H)
			}
		}
	})
	return out, nil
}

// forEachPair visits the consecutive parent pairs of every batch slice in
// a fixed order, which keeps the operators deterministic under a seeded
// stream.
func forEachPair(v3 *tensor.Tensor, f func(b, i int)) {
	for b := 0; b < v3.Dim(0); b++ {
		for i := 0; i+1 < v3.Dim(1); i += 2 {
			f(b, i)
		}
	}
}
