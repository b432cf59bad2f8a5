// Package result defines the versioned report structs and serializers for
// GP and ACO runs, plus cross-run statistical aggregation (spec.md §6
// "Result output", SPEC_FULL.md A4/A5), grounded on the teacher's
// engine.WriteTextFinal/WriteJSONFinal and tp1/statistics.cpp's
// aggregateParamPair_ (replaced here by gonum/stat.MeanStdDev).
package result

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/stat"

	acoengine "github.com/RenatoUtsch/compnat/pkg/aco/engine"
	gpengine "github.com/RenatoUtsch/compnat/pkg/gp/engine"
)

// ReportVersion is the current schema version written to every report.
const ReportVersion = 1

// MeanStdDev is a mean ± standard deviation pair across independent runs.
type MeanStdDev struct {
	Mean   float64
	StdDev float64
}

func aggregate(values []float64) MeanStdDev {
	mean, stddev := stat.MeanStdDev(values, nil)
	return MeanStdDev{Mean: mean, StdDev: stddev}
}

// GPGenerationSummary aggregates one generation's statistics across every
// GP instance.
type GPGenerationSummary struct {
	Generation      int
	BestFitness     MeanStdDev
	WorstFitness    MeanStdDev
	MeanFitness     MeanStdDev
	MeanSize        MeanStdDev
	DuplicateCount  MeanStdDev
	CrossoverBetter MeanStdDev
	MutationBetter  MeanStdDev
	BestTreeSample  string // best individual's printed form from instance 0
	TestFitness     *MeanStdDev
}

// GPReport is the versioned, serializable GP run report.
type GPReport struct {
	Version      int
	NumInstances int
	Generations  []GPGenerationSummary
}

// AggregateGP builds a GPReport from a gp/engine.Result, aggregating every
// generation's statistics across instances with mean±stddev (spec.md §6,
// SPEC_FULL.md A5).
func AggregateGP(res *gpengine.Result) *GPReport {
	if len(res.Instances) == 0 {
		return &GPReport{Version: ReportVersion}
	}
	numGenerations := len(res.Instances[0].Generations)
	report := &GPReport{
		Version:      ReportVersion,
		NumInstances: len(res.Instances),
		Generations:  make([]GPGenerationSummary, numGenerations),
	}

	for g := 0; g < numGenerations; g++ {
		best := make([]float64, 0, len(res.Instances))
		worst := make([]float64, 0, len(res.Instances))
		meanFit := make([]float64, 0, len(res.Instances))
		meanSize := make([]float64, 0, len(res.Instances))
		dupCount := make([]float64, 0, len(res.Instances))
		crossBetter := make([]float64, 0, len(res.Instances))
		mutBetter := make([]float64, 0, len(res.Instances))
		var testFit []float64

		for _, inst := range res.Instances {
			rec := inst.Generations[g]
			best = append(best, rec.Stats.BestFitness)
			worst = append(worst, rec.Stats.WorstFitness)
			meanFit = append(meanFit, rec.Stats.MeanFitness)
			meanSize = append(meanSize, rec.Stats.MeanSize)
			dupCount = append(dupCount, float64(rec.Stats.DuplicateCount))
			if rec.Stats.CrossoverBetter >= 0 {
				crossBetter = append(crossBetter, float64(rec.Stats.CrossoverBetter))
			}
			if rec.Stats.MutationBetter >= 0 {
				mutBetter = append(mutBetter, float64(rec.Stats.MutationBetter))
			}
			if rec.HasTestFitness {
				testFit = append(testFit, rec.TestFitness)
			}
		}

		summary := GPGenerationSummary{
			Generation:     g,
			BestFitness:    aggregate(best),
			WorstFitness:   aggregate(worst),
			MeanFitness:    aggregate(meanFit),
			MeanSize:       aggregate(meanSize),
			DuplicateCount: aggregate(dupCount),
			BestTreeSample: res.Instances[0].Generations[g].BestTreeString,
		}
		if len(crossBetter) > 0 {
			summary.CrossoverBetter = aggregate(crossBetter)
		}
		if len(mutBetter) > 0 {
			summary.MutationBetter = aggregate(mutBetter)
		}
		if len(testFit) > 0 {
			agg := aggregate(testFit)
			summary.TestFitness = &agg
		}
		report.Generations[g] = summary
	}
	return report
}

// ACOIterationSummary aggregates one iteration's statistics across every
// ACO execution.
type ACOIterationSummary struct {
	Iteration  int
	GlobalBest MeanStdDev
	LocalBest  MeanStdDev
	LocalWorst MeanStdDev
}

// ACOReport is the versioned, serializable ACO run report.
type ACOReport struct {
	Version       int
	NumExecutions int
	Iterations    []ACOIterationSummary
}

// AggregateACO builds an ACOReport from numExecutions independent
// aco/engine.Result runs (spec.md §6, SPEC_FULL.md A5).
func AggregateACO(results []*acoengine.Result) *ACOReport {
	if len(results) == 0 {
		return &ACOReport{Version: ReportVersion}
	}
	numIterations := len(results[0].Iterations)
	report := &ACOReport{
		Version:       ReportVersion,
		NumExecutions: len(results),
		Iterations:    make([]ACOIterationSummary, numIterations),
	}

	for i := 0; i < numIterations; i++ {
		global := make([]float64, 0, len(results))
		local := make([]float64, 0, len(results))
		worst := make([]float64, 0, len(results))
		for _, res := range results {
			rec := res.Iterations[i]
			global = append(global, rec.GlobalBest.Distance)
			local = append(local, rec.LocalBest.Distance)
			worst = append(worst, rec.LocalWorst.Distance)
		}
		report.Iterations[i] = ACOIterationSummary{
			Iteration:  i,
			GlobalBest: aggregate(global),
			LocalBest:  aggregate(local),
			LocalWorst: aggregate(worst),
		}
	}
	return report
}

// WriteText renders report (a *GPReport or *ACOReport) as a human-readable
// table, matching the teacher's fmt.Fprintf-based WriteTextFinal.
func WriteText(w io.Writer, report interface{}) error {
	buf := bufio.NewWriter(w)
	defer buf.Flush()

	switch r := report.(type) {
	case *GPReport:
		fmt.Fprintf(buf, "GP report (version %d, %d instances)\n", r.Version, r.NumInstances)
		for _, g := range r.Generations {
			fmt.Fprintf(buf, "gen %3d | best %10.6f±%8.6f | worst %10.6f±%8.6f | mean %10.6f±%8.6f | size %8.3f±%6.3f | dup %5.2f±%5.2f\n",
				g.Generation, g.BestFitness.Mean, g.BestFitness.StdDev, g.WorstFitness.Mean, g.WorstFitness.StdDev,
				g.MeanFitness.Mean, g.MeanFitness.StdDev, g.MeanSize.Mean, g.MeanSize.StdDev,
				g.DuplicateCount.Mean, g.DuplicateCount.StdDev)
			if g.TestFitness != nil {
				fmt.Fprintf(buf, "         test fitness %10.6f±%8.6f\n", g.TestFitness.Mean, g.TestFitness.StdDev)
			}
			fmt.Fprintf(buf, "         best: %s\n", g.BestTreeSample)
		}
	case *ACOReport:
		fmt.Fprintf(buf, "ACO report (version %d, %d executions)\n", r.Version, r.NumExecutions)
		for _, it := range r.Iterations {
			fmt.Fprintf(buf, "iter %3d | globalBest %10.4f±%8.4f | localBest %10.4f±%8.4f | localWorst %10.4f±%8.4f\n",
				it.Iteration, it.GlobalBest.Mean, it.GlobalBest.StdDev, it.LocalBest.Mean, it.LocalBest.StdDev,
				it.LocalWorst.Mean, it.LocalWorst.StdDev)
		}
	default:
		return fmt.Errorf("result: WriteText: unsupported report type %T", report)
	}
	return nil
}

// WriteJSON encodes report as indented JSON, matching the teacher's
// encoding/json usage.
func WriteJSON(w io.Writer, report interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteGob encodes report with encoding/gob: the stdlib stand-in for the
// original's flatbuffer binary schema (spec.md §6 permits "any
// well-defined serialization").
func WriteGob(w io.Writer, report interface{}) error {
	return gob.NewEncoder(w).Encode(report)
}

// WriteToFile opens path and writes report using the encoder named by
// format ("text", "json" or "gob").
func WriteToFile(path, format string, report interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("result: creating %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "text":
		return WriteText(f, report)
	case "json":
		return WriteJSON(f, report)
	case "gob":
		return WriteGob(f, report)
	default:
		return fmt.Errorf("result: unknown format %q", format)
	}
}
