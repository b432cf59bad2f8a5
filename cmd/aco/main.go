// Command aco runs the Ant Colony Optimization core for the capacitated
// p-median problem (spec.md §1 TP2), following the teacher's main.go
// flag/report style.
package main

import (
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	acoengine "github.com/RenatoUtsch/compnat/pkg/aco/engine"
	"github.com/RenatoUtsch/compnat/pkg/aco/pmedian"
	"github.com/RenatoUtsch/compnat/pkg/result"
	"github.com/RenatoUtsch/compnat/pkg/rng"
)

func main() {
	var (
		datasetPath   string
		outputFile    string
		seed          int64
		numAnts       int
		numExecutions int
		numIterations int
		decay         float64
		format        string
	)

	flag.StringVar(&datasetPath, "dataset", "", "path to the p-median dataset")
	flag.StringVar(&outputFile, "output_file", "", "path to write the result report (default stdout)")
	flag.Int64Var(&seed, "seed", -1, "master random seed (-1 = random)")
	flag.IntVar(&numAnts, "num_ants", -1, "ants per iteration (-1 = n - p)")
	flag.IntVar(&numExecutions, "num_executions", 30, "number of independent ACO executions")
	flag.IntVar(&numIterations, "num_iterations", 50, "number of iterations per execution")
	flag.Float64Var(&decay, "decay", 0.01, "pheromone decay rate")
	flag.StringVar(&format, "format", "text", "output format (text, json, gob)")
	flag.Parse()

	if datasetPath == "" {
		fmt.Fprintln(os.Stderr, "error: -dataset is required")
		os.Exit(1)
	}

	ds, err := pmedian.Load(datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	resolvedSeed := resolveSeed(seed)
	cfg, err := acoengine.NewConfig(resolvedSeed, numAnts, numExecutions, numIterations, decay, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Each execution draws its own seed from a single master-seeded
	// generator instead of reusing one global seed, porting
	// tp2/tp2.cpp's generateSeeds_ (SPEC_FULL.md supplemented feature).
	master := rng.New(cfg.Seed)
	results := make([]*acoengine.Result, 0, cfg.NumExecutions)
	for i := 0; i < cfg.NumExecutions; i++ {
		executionSeed := master.Uint32()
		r := rng.New(executionSeed)
		res, err := acoengine.Run(r, cfg, ds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: execution %d: %v\n", i, err)
			os.Exit(1)
		}
		results = append(results, res)
		fmt.Fprintf(os.Stderr, "aco: execution %d/%d complete, global best %v\n", i+1, cfg.NumExecutions, res.GlobalBest.Distance)
	}

	report := result.AggregateACO(results)
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
