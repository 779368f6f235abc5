// Package benchmarks provides synthetic multi-objective test problems used
// to validate the ranking engine and the NSGA-II loop. Every problem
// evaluates batched decision tensors in one call.
package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// Problem describes the contract a benchmark problem implements.
type Problem interface {
	Name() string

	NumVariables() int
	NumObjectives() int
	Bounds() []evolution.Bounds
	Senses() []evolution.Sense

	// Evaluate maps a decision tensor [...batch, N, L] to an evaluation
	// tensor [...batch, N, M].
	Evaluate(values *tensor.Tensor) (*tensor.Tensor, error)

	// TrueParetoFront samples points on the analytical Pareto front, or
	// returns nil when it has no closed form for the problem's
	// configuration.
	TrueParetoFront(numPoints int) [][]float64
}

// Initialize samples a uniform random population within the problem's
// bounds: one population of popSize candidates per slice of the given
// batch shape (pass nil for an unbatched population).
func Initialize(rng *rand.Rand, p Problem, batch []int, popSize int) (*tensor.Tensor, error) {
	if popSize < 1 {
		return nil, fmt.Errorf("%w: population size %d", evolution.ErrInvalidParam, popSize)
	}
	bounds := p.Bounds()
	shape := append(append([]int{}, batch...), popSize, len(bounds))
	out := tensor.Zeros(shape...)

	data := out.Data()
	for i := range data {
		b := bounds[i%len(bounds)]
		data[i] = b.L + rng.Float64()*(b.H-b.L)
	}
	return out, nil
}

// evaluateRows checks the decision tensor against the problem's variable
// count and lifts the rowwise objective function over the whole batch.
func evaluateRows(values *tensor.Tensor, numVars, numObjs int, f func(dst, x []float64)) (*tensor.Tensor, error) {
	if values == nil || values.Dims() < 2 || values.Dim(values.Dims()-1) != numVars {
		return nil, fmt.Errorf("%w: want decision tensor [...batch, N, %d]", evolution.ErrShapeMismatch, numVars)
	}
	return tensor.MapRows(values, numObjs, f)
}

func unitBounds(numVars int) []evolution.Bounds {
	b := make([]evolution.Bounds, numVars)
	for i := range b {
		b[i] = evolution.Bounds{L: 0.0, H: 1.0}
	}
	return b
}
