// Command gp runs the tree-based Genetic Programming core for symbolic
// regression (spec.md §1 TP1), following the teacher's main.go flag/report
// style.
package main

import (
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/RenatoUtsch/compnat/pkg/gp/dataset"
	"github.com/RenatoUtsch/compnat/pkg/gp/engine"
	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
	"github.com/RenatoUtsch/compnat/pkg/result"
)

func main() {
	var (
		datasetTrain   string
		datasetTest    string
		outputFile     string
		seed           int64
		numInstances   int
		numGenerations int
		populationSize int
		tournamentSize int
		maxHeight      int
		crossoverProb  float64
		elitism        bool
		alwaysTest     bool
		format         string
		workers        int
	)

	flag.StringVar(&datasetTrain, "dataset_train", "", "path to the training dataset (CSV)")
	flag.StringVar(&datasetTest, "dataset_test", "", "path to the test dataset (CSV); optional")
	flag.StringVar(&outputFile, "output_file", "", "path to write the result report (default stdout)")
	flag.Int64Var(&seed, "seed", -1, "random seed (-1 = random)")
	flag.IntVar(&numInstances, "num_instances", 30, "number of independent GP runs")
	flag.IntVar(&numGenerations, "num_generations", 50, "number of generations per run")
	flag.IntVar(&populationSize, "population_size", 100, "population size (normalized to fit max_height)")
	flag.IntVar(&tournamentSize, "tournament_size", 7, "tournament selection size")
	flag.IntVar(&maxHeight, "max_height", 7, "max tree height")
	flag.Float64Var(&crossoverProb, "crossover_prob", 0.9, "probability of crossover vs mutation")
	flag.BoolVar(&elitism, "elitism", false, "carry the best individual unchanged to the next generation")
	flag.BoolVar(&alwaysTest, "always_test", false, "evaluate the test dataset every generation, not just the last")
	flag.StringVar(&format, "format", "text", "output format (text, json, gob)")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "number of parallel fitness workers")
	flag.Parse()

	if datasetTrain == "" {
		fmt.Fprintln(os.Stderr, "error: -dataset_train is required")
		os.Exit(1)
	}

	train, err := dataset.Load(datasetTrain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	var test []dataset.Sample
	if datasetTest != "" {
		test, err = dataset.Load(datasetTest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	numVars := len(train[0].Input)
	functions := tree.Functions
	terminals := tree.Terminals(numVars)

	resolvedSeed := resolveSeed(seed)
	params, err := dataset.NewParams(resolvedSeed, numInstances, numGenerations, populationSize,
		tournamentSize, maxHeight, crossoverProb, elitism, alwaysTest, functions, terminals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := engine.NewConfig(params, workers, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	runResult, err := engine.Run(cfg, train, test)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	report := result.AggregateGP(runResult)
	if err := writeReport(outputFile, format, report); err != nil {
		fmt.Fprintf(os.Stderr, "error writing report: %v\n", err)
		os.Exit(1)
	}
}

func resolveSeed(seed int64) uint32 {
	if seed >= 0 {
		return uint32(seed)
	}
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read random seed, falling back to 1: %v\n", err)
		return 1
	}
	return binary.BigEndian.Uint32(buf[:])
}

func writeReport(outputFile, format string, report interface{}) error {
	if outputFile == "" {
		switch format {
		case "json":
			return result.WriteJSON(os.Stdout, report)
		case "gob":
			return result.WriteGob(os.Stdout, report)
		default:
			return result.WriteText(os.Stdout, report)
		}
	}
	return result.WriteToFile(outputFile, format, report)
}
