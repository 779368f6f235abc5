// evobench runs NSGA-II against a named benchmark problem and writes an
// HTML scatter plot of the resulting Pareto front.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/codeaudit/evotorch/pkg/evolution"
	"github.com/codeaudit/evotorch/pkg/evolution/algorithms"
	"github.com/codeaudit/evotorch/pkg/evolution/benchmarks"
	"github.com/codeaudit/evotorch/pkg/evolution/util"
)

func main() {
	var (
		problemName = pflag.String("problem", "zdt1", "benchmark problem: zdt1, zdt2 or dtlz1")
		numVars     = pflag.Int("num-vars", 30, "number of decision variables")
		popSize     = pflag.Int("pop-size", 100, "population size (must be even)")
		generations = pflag.Int("generations", 250, "number of generations")
		tournament  = pflag.Int("tournament-size", 2, "tournament size")
		seed        = pflag.Uint64("seed", 1, "random seed")
		out         = pflag.String("out", "", "output HTML path (default <problem>_<algorithm>_results.html)")
	)
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()

	if err := run(*problemName, *numVars, *popSize, *generations, *tournament, *seed, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(problemName string, numVars, popSize, generations, tournament int, seed uint64, out string) error {
	var problem benchmarks.Problem
	switch problemName {
	case "zdt1":
		problem = benchmarks.NewZDT1(numVars)
	case "zdt2":
		problem = benchmarks.NewZDT2(numVars)
	case "dtlz1":
		problem = benchmarks.NewDTLZ1(numVars, 2)
	default:
		return fmt.Errorf("unknown problem %q", problemName)
	}

	cfg := algorithms.Config{
		PopulationSize: popSize,
		MaxGenerations: generations,
		CrossoverProb:  evolution.Scalar(0.9),
		SBXEta:         evolution.Scalar(2.0),
		MutationProb:   evolution.Scalar(1.0 / float64(numVars)),
		MutationEta:    evolution.Scalar(2.0),
		TournamentSize: tournament,
	}
	nsga, err := algorithms.NewNSGAII(cfg, problem)
	if err != nil {
		return err
	}

	ctx := klog.NewContext(context.Background(), klog.Background())
	rng := rand.New(rand.NewPCG(seed, seed+1))
	pop, err := nsga.Run(ctx, rng)
	if err != nil {
		return err
	}

	front, err := algorithms.ParetoFront(pop, problem.Senses(), 0)
	if err != nil {
		return err
	}
	klog.InfoS("optimization complete", "problem", problem.Name(), "paretoSize", len(front))
	return util.PlotFront(front, problem, nsga.Name(), out)
}
