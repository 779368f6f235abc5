package benchmarks

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// ZDT2 has a non-convex Pareto front.
type ZDT2 struct {
	numVars int
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{numVars: numVars}
}

func (p *ZDT2) Name() string { return "ZDT2" }

func (p *ZDT2) NumVariables() int { return p.numVars }

func (p *ZDT2) NumObjectives() int { return 2 }

func (p *ZDT2) Bounds() []evolution.Bounds { return unitBounds(p.numVars) }

func (p *ZDT2) Senses() []evolution.Sense {
	return []evolution.Sense{evolution.Minimize, evolution.Minimize}
}

func (p *ZDT2) Evaluate(values *tensor.Tensor) (*tensor.Tensor, error) {
	return evaluateRows(values, p.numVars, 2, func(dst, x []float64) {
		g := 1.0 + 9.0*floats.Sum(x[1:])/float64(len(x)-1)
		dst[0] = x[0]
		// ZDT2 uses (1 - (x1/g)^2) instead of sqrt.
		dst[1] = g * (1.0 - math.Pow(x[0]/g, 2))
	})
}

// TrueParetoFront samples the analytical front f2 = 1 - f1^2.
func (p *ZDT2) TrueParetoFront(numPoints int) [][]float64 {
	points := make([][]float64, numPoints)
	for i := 0; i < numPoints; i++ {
		x := float64(i) / float64(numPoints-1)
		points[i] = []float64{x, 1.0 - x*x}
	}
	return points
}
