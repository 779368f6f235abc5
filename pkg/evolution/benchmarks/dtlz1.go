package benchmarks

import (
	"math"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

// DTLZ1 is scalable to any number of objectives. It has a linear Pareto
// front and many local fronts.
type DTLZ1 struct {
	numVars       int
	numObjectives int
}

// NewDTLZ1 builds the problem. Recommended: numVars = numObjectives + k - 1,
// where k = 5 for DTLZ1.
func NewDTLZ1(numVars, numObjectives int) *DTLZ1 {
	return &DTLZ1{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ1) Name() string { return "DTLZ1" }

func (p *DTLZ1) NumVariables() int { return p.numVars }

func (p *DTLZ1) NumObjectives() int { return p.numObjectives }

func (p *DTLZ1) Bounds() []evolution.Bounds { return unitBounds(p.numVars) }

func (p *DTLZ1) Senses() []evolution.Sense {
	senses := make([]evolution.Sense, p.numObjectives)
	for i := range senses {
		senses[i] = evolution.Minimize
	}
	return senses
}

func (p *DTLZ1) g(x []float64) float64 {
	k := p.numVars - p.numObjectives + 1
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2) - math.Cos(20*math.Pi*(x[i]-0.5))
	}
	return 100 * (float64(k) + sum)
}

func (p *DTLZ1) Evaluate(values *tensor.Tensor) (*tensor.Tensor, error) {
	return evaluateRows(values, p.numVars, p.numObjectives, func(dst, x []float64) {
		g := p.g(x)
		for obj := 0; obj < p.numObjectives; obj++ {
			f := 0.5 * (1 + g)
			for i := 0; i < p.numObjectives-obj-1; i++ {
				f *= x[i]
			}
			if obj > 0 {
				f *= 1 - x[p.numObjectives-obj-1]
			}
			dst[obj] = f
		}
	})
}

// TrueParetoFront samples the front sum(f_i) = 0.5. Generating it for
// arbitrary dimensions is involved, so only the two-objective line from
// (0, 0.5) to (0.5, 0) is produced and higher dimensions return nil.
func (p *DTLZ1) TrueParetoFront(numPoints int) [][]float64 {
	if p.numObjectives != 2 {
		return nil
	}
	points := make([][]float64, numPoints)
	for i := 0; i < numPoints; i++ {
		t := float64(i) / float64(numPoints-1)
		points[i] = []float64{0.5 * t, 0.5 * (1 - t)}
	}
	return points
}
