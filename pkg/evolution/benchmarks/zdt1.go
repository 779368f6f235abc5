package benchmarks

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// ZDT1 is a two-objective benchmark with a convex Pareto front. For more
// details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	numVars int
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{numVars: numVars}
}

func (p *ZDT1) Name() string { return "ZDT1" }

func (p *ZDT1) NumVariables() int { return p.numVars }

func (p *ZDT1) NumObjectives() int { return 2 }

func (p *ZDT1) Bounds() []evolution.Bounds { return unitBounds(p.numVars) }

func (p *ZDT1) Senses() []evolution.Sense {
	return []evolution.Sense{evolution.Minimize, evolution.Minimize}
}

func (p *ZDT1) Evaluate(values *tensor.Tensor) (*tensor.Tensor, error) {
	return evaluateRows(values, p.numVars, 2, func(dst, x []float64) {
		g := 1.0 + 9.0*floats.Sum(x[1:])/float64(len(x)-1)
		dst[0] = x[0]
		dst[1] = g * (1.0 - math.Sqrt(x[0]/g))
	})
}

// TrueParetoFront samples the analytical front f2 = 1 - sqrt(f1).
func (p *ZDT1) TrueParetoFront(numPoints int) [][]float64 {
	points := make([][]float64, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = []float64{x, 1.0 - math.Sqrt(x)}
	}
	return points
}
