// Package engine drives the multi-instance GP loop (spec.md §4.C9),
// calling the generators, operators and statistics packages in sequence
// and logging progress the way the teacher's engine.Run does.
package engine

import (
	"fmt"
	"os"

	"github.com/RenatoUtsch/compnat/pkg/gp/dataset"
	"github.com/RenatoUtsch/compnat/pkg/gp/generate"
	"github.com/RenatoUtsch/compnat/pkg/gp/operator"
	"github.com/RenatoUtsch/compnat/pkg/gp/stats"
	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
	"github.com/RenatoUtsch/compnat/pkg/rng"
	"github.com/RenatoUtsch/compnat/pkg/workerpool"
)

// Config wraps the GP Params with the ambient concerns the original
// leaves to its caller: worker count and output format (SPEC_FULL.md §3).
type Config struct {
	*dataset.Params
	Workers      int
	OutputFormat string
}

// NewConfig validates format and builds a Config. workers <= 0 defaults to
// runtime.NumCPU() inside workerpool.New.
func NewConfig(params *dataset.Params, workers int, format string) (*Config, error) {
	switch format {
	case "text", "json", "gob":
	default:
		return nil, fmt.Errorf("engine: unknown output format %q", format)
	}
	return &Config{Params: params, Workers: workers, OutputFormat: format}, nil
}

// GenerationRecord is one generation's statistics plus the best
// individual's printed form, and the best individual's test-set fitness on
// the final generation (or on every generation when AlwaysTest is set).
type GenerationRecord struct {
	Generation     int
	Stats          stats.Statistics
	BestTreeString string
	HasTestFitness bool
	TestFitness    float64
}

// InstanceResult is one independent GP run's full generation history.
type InstanceResult struct {
	Generations []GenerationRecord
}

// Result is the outcome of every instance in a Run.
type Result struct {
	Instances []InstanceResult
}

// Run executes cfg.NumInstances independent GP runs, each for
// cfg.NumGenerations generations, following spec.md §4.C9. train is always
// used for fitness; test, if non-nil, is evaluated whenever cfg.AlwaysTest
// or on the last generation of each instance.
func Run(cfg *Config, train, test []dataset.Sample) (*Result, error) {
	pool := workerpool.New(cfg.Workers)
	defer pool.Shutdown()

	r := rng.New(cfg.Seed)
	result := &Result{Instances: make([]InstanceResult, 0, cfg.NumInstances)}

	for instance := 0; instance < cfg.NumInstances; instance++ {
		instanceResult, err := runInstance(r, cfg, train, test, pool)
		if err != nil {
			return nil, fmt.Errorf("engine: instance %d: %w", instance, err)
		}
		result.Instances = append(result.Instances, *instanceResult)
		fmt.Fprintf(os.Stderr, "gp: instance %d/%d complete, best fitness %v\n",
			instance+1, cfg.NumInstances, lastBest(instanceResult))
	}
	return result, nil
}

func lastBest(r *InstanceResult) float64 {
	if len(r.Generations) == 0 {
		return 0
	}
	return r.Generations[len(r.Generations)-1].Stats.BestFitness
}

func runInstance(r *rng.Source, cfg *Config, train, test []dataset.Sample, pool *workerpool.Pool) (*InstanceResult, error) {
	population := generate.RampedHalfAndHalf(r, cfg.Params)
	fitness, err := stats.FitnessPopulation(population, train, pool)
	if err != nil {
		return nil, err
	}
	sizes := stats.Sizes(population)

	result := &InstanceResult{Generations: make([]GenerationRecord, 0, cfg.NumGenerations+1)}
	genStats := stats.Compute(fitness, sizes)
	result.Generations = append(result.Generations, buildRecord(0, cfg, population, fitness, genStats, test))

	for g := 1; g <= cfg.NumGenerations; g++ {
		newPop, provenance := operator.NewGeneration(r, cfg.Params, population, fitness, sizes)
		newFitness, err := stats.FitnessPopulation(newPop, train, pool)
		if err != nil {
			return nil, err
		}
		newSizes := stats.Sizes(newPop)
		genStats := stats.ComputeWithProvenance(newFitness, newSizes, provenance)

		record := buildRecord(g, cfg, newPop, newFitness, genStats, test)
		result.Generations = append(result.Generations, record)

		population, fitness, sizes = newPop, newFitness, newSizes
		fmt.Fprintf(os.Stderr, "gp: generation %d/%d best=%v mean=%v\n",
			g, cfg.NumGenerations, genStats.BestFitness, genStats.MeanFitness)
	}
	return result, nil
}

func buildRecord(gen int, cfg *Config, population []*tree.Node, fitness []float64, genStats stats.Statistics, test []dataset.Sample) GenerationRecord {
	record := GenerationRecord{
		Generation:     gen,
		Stats:          genStats,
		BestTreeString: population[genStats.BestIndex].String(),
	}
	if test != nil && (cfg.AlwaysTest || gen == cfg.NumGenerations) {
		record.HasTestFitness = true
		record.TestFitness = stats.Fitness(population[genStats.BestIndex], test)
	}
	return record
}
