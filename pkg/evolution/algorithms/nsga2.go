// Package algorithms wires the functional operators into complete
// evolutionary loops. NSGA-II is the reference consumer of the ranking
// engine: every generation combines parents and offspring and truncates
// the extended population front-by-front with crowding-based tie-breaks.
package algorithms

import (
	"context"
	"fmt"
	"math/rand/v2"

	"k8s.io/klog/v2"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/evolution/benchmarks"
	"github.com/codeaudit/evotorch/pkg/evolution/operators"
	"github.com/codeaudit/evotorch/pkg/evolution/ranking"
	"github.com/codeaudit/evotorch/pkg/tensor"
)

const Name = "NSGA-II"

// Config holds the NSGA-II hyperparameters. CrossoverProb, SBXEta,
// MutationProb and MutationEta accept per-batch-slice vectors, so each
// slice of a batched run can explore with its own settings.
type Config struct {
	PopulationSize int
	MaxGenerations int
	CrossoverProb  evolution.Param
	SBXEta         evolution.Param
	MutationProb   evolution.Param
	MutationEta    evolution.Param
	TournamentSize int

	// BatchShape adds leading batch dimensions: every slice evolves an
	// independent population in the same vectorized pass. Nil runs a
	// single unbatched population.
	BatchShape []int
}

// NSGAII runs the batched NSGA-II algorithm against a benchmark problem.
type NSGAII struct {
	cfg     Config
	problem benchmarks.Problem
}

func NewNSGAII(cfg Config, problem benchmarks.Problem) (*NSGAII, error) {
	if cfg.PopulationSize < 2 || cfg.PopulationSize%2 != 0 {
		return nil, fmt.Errorf("%w: population size must be even and at least 2, got %d", evolution.ErrInvalidParam, cfg.PopulationSize)
	}
	if cfg.MaxGenerations < 0 {
		return nil, fmt.Errorf("%w: negative generation count %d", evolution.ErrInvalidParam, cfg.MaxGenerations)
	}
	if cfg.TournamentSize < 1 {
		return nil, fmt.Errorf("%w: tournament size %d", evolution.ErrInvalidParam, cfg.TournamentSize)
	}
	return &NSGAII{cfg: cfg, problem: problem}, nil
}

func (n *NSGAII) Name() string { return Name }

// Run evolves the population and returns the final one, TakeBest-ordered
// (best fronts first). The supplied random stream is the only mutable
// state; a fixed seed reproduces the run exactly.
func (n *NSGAII) Run(ctx context.Context, rng *rand.Rand) (evolution.Population, error) {
	logger := klog.FromContext(ctx)
	senses := n.problem.Senses()
	bounds := n.problem.Bounds()

	values, err := benchmarks.Initialize(rng, n.problem, n.cfg.BatchShape, n.cfg.PopulationSize)
	if err != nil {
		return evolution.Population{}, err
	}
	pop, err := n.evaluate(values)
	if err != nil {
		return evolution.Population{}, err
	}

	for gen := 0; gen < n.cfg.MaxGenerations; gen++ {
		parents, err := operators.Tournament(rng, pop, senses, n.cfg.PopulationSize, n.cfg.TournamentSize)
		if err != nil {
			return evolution.Population{}, err
		}
		childValues, err := operators.SimulatedBinaryCrossover(rng, parents.Values(), n.cfg.CrossoverProb, n.cfg.SBXEta, bounds)
		if err != nil {
			return evolution.Population{}, err
		}
		childValues, err = operators.PolynomialMutation(rng, childValues, n.cfg.MutationProb, n.cfg.MutationEta, bounds)
		if err != nil {
			return evolution.Population{}, err
		}
		offspring, err := n.evaluate(childValues)
		if err != nil {
			return evolution.Population{}, err
		}

		extended, err := operators.Combine(pop, offspring)
		if err != nil {
			return evolution.Population{}, err
		}
		pop, err = ranking.TakeBest(extended, n.cfg.PopulationSize, senses, true)
		if err != nil {
			return evolution.Population{}, err
		}

		logger.V(4).Info("generation complete", "algorithm", Name, "problem", n.problem.Name(), "generation", gen+1)
	}

	_, canonEvals := pop.Canonical()
	fronts, err := ranking.Fronts(canonEvals, senses)
	if err != nil {
		return evolution.Population{}, err
	}
	logger.V(2).Info("run finished", "algorithm", Name, "problem", n.problem.Name(),
		"generations", n.cfg.MaxGenerations, "paretoSize", len(fronts[0][0]))
	return pop, nil
}

func (n *NSGAII) evaluate(values *tensor.Tensor) (evolution.Population, error) {
	evals, err := n.problem.Evaluate(values)
	if err != nil {
		return evolution.Population{}, err
	}
	return evolution.NewPopulation(values, evals)
}
