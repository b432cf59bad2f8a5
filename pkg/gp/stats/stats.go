// Package stats implements GP fitness evaluation and per-generation
// statistics (spec.md §4.C7), grounded on tp1/fitness.cpp and
// tp1/statistics.cpp.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RenatoUtsch/compnat/pkg/gp/dataset"
	"github.com/RenatoUtsch/compnat/pkg/gp/operator"
	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
	"github.com/RenatoUtsch/compnat/pkg/workerpool"
)

// Fitness computes the RMSE of tree against dataset: sqrt(sum((eval(x)-y)^2) / n).
func Fitness(t *tree.Node, samples []dataset.Sample) float64 {
	var sumSq float64
	for _, s := range samples {
		diff := t.Eval(s.Input) - s.Target
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(samples)))
}

// FitnessPopulation evaluates every tree in population against samples,
// dispatching the embarrassingly-parallel map over pool. Result order
// matches population order regardless of scheduling (spec.md §4.C7, §5).
func FitnessPopulation(population []*tree.Node, samples []dataset.Sample, pool *workerpool.Pool) ([]float64, error) {
	result := make([]float64, len(population))
	err := pool.Run(0, len(population), func(i int) {
		result[i] = Fitness(population[i], samples)
	})
	return result, err
}

// Sizes returns the node count of every tree in population. Sequential:
// the original computes this on the controller (spec.md §4.C7 "sequential
// is sufficient").
func Sizes(population []*tree.Node) []int {
	sizes := make([]int, len(population))
	for i, t := range population {
		sizes[i] = t.Size()
	}
	return sizes
}

// NoProvenance is the sentinel used for improvement tallies on generation
// 0, where no crossover/mutation provenance exists (spec.md §4.C7).
const NoProvenance = -1

// Statistics summarizes one generation.
type Statistics struct {
	BestIndex      int
	BestFitness    float64
	WorstIndex     int
	WorstFitness   float64
	MeanFitness    float64
	MeanSize       float64
	MinSize        int
	MaxSize        int
	DuplicateCount int

	// CrossoverBetter/CrossoverWorse/CrossoverEqual and their Mutation
	// counterparts are NoProvenance on generation 0.
	CrossoverBetter int
	CrossoverWorse  int
	CrossoverEqual  int
	MutationBetter  int
	MutationWorse   int
	MutationEqual   int
}

// Compute builds generation-0 statistics: no provenance is available, so
// the improvement tallies are all NoProvenance.
func Compute(fitness []float64, sizes []int) Statistics {
	return computeWithProvenance(fitness, sizes, nil)
}

// ComputeWithProvenance builds statistics for a generation produced by
// operator.NewGeneration, tallying how many children ended up better,
// worse, or equal to their recorded parent fitness.
func ComputeWithProvenance(fitness []float64, sizes []int, provenance []operator.Provenance) Statistics {
	return computeWithProvenance(fitness, sizes, provenance)
}

func computeWithProvenance(fitness []float64, sizes []int, provenance []operator.Provenance) Statistics {
	s := Statistics{
		CrossoverBetter: NoProvenance,
		CrossoverWorse:  NoProvenance,
		CrossoverEqual:  NoProvenance,
		MutationBetter:  NoProvenance,
		MutationWorse:   NoProvenance,
		MutationEqual:   NoProvenance,
	}

	bestIdx, worstIdx := minMaxIndex(fitness)
	s.BestIndex = bestIdx
	s.BestFitness = fitness[bestIdx]
	s.WorstIndex = worstIdx
	s.WorstFitness = fitness[worstIdx]

	floatSizes := make([]float64, len(sizes))
	for i, sz := range sizes {
		floatSizes[i] = float64(sz)
	}
	s.MeanFitness = mean(fitness)
	s.MeanSize = mean(floatSizes)
	s.MinSize = int(floats.Min(floatSizes))
	s.MaxSize = int(floats.Max(floatSizes))
	s.DuplicateCount = countDuplicates(fitness)

	if provenance != nil {
		s.CrossoverBetter, s.CrossoverWorse, s.CrossoverEqual = 0, 0, 0
		s.MutationBetter, s.MutationWorse, s.MutationEqual = 0, 0, 0
		for i, p := range provenance {
			better, worse, equal := compareToParent(fitness[i], p.ParentFitness)
			if p.IsCrossover {
				s.CrossoverBetter += better
				s.CrossoverWorse += worse
				s.CrossoverEqual += equal
			} else {
				s.MutationBetter += better
				s.MutationWorse += worse
				s.MutationEqual += equal
			}
		}
	}

	return s
}

func compareToParent(child, parent float64) (better, worse, equal int) {
	switch {
	case math.IsNaN(child) || math.IsNaN(parent):
		return 0, 1, 0
	case child < parent:
		return 1, 0, 0
	case child > parent:
		return 0, 1, 0
	default:
		return 0, 0, 1
	}
}

// minMaxIndex finds the best (minimum, fitness-minimizing) and worst
// (maximum) index, treating NaN as worse than any finite value so it can
// never be "best" (spec.md §7 error taxonomy class 4).
func minMaxIndex(fitness []float64) (best, worst int) {
	best, worst = 0, 0
	for i := 1; i < len(fitness); i++ {
		if isBetter(fitness[i], fitness[best]) {
			best = i
		}
		if isWorse(fitness[i], fitness[worst]) {
			worst = i
		}
	}
	return best, worst
}

func isBetter(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

func isWorse(a, b float64) bool {
	if math.IsNaN(a) {
		return true
	}
	if math.IsNaN(b) {
		return false
	}
	return a > b
}

// mean sums every value, including NaN/Inf, matching tp1/statistics.cpp's
// unfiltered avgFitness accumulation: a single non-finite individual
// poisons the whole generation's reported mean rather than being
// silently dropped (spec.md §7 class 4, "never filtered from the
// population").
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

func countDuplicates(fitness []float64) int {
	seen := make(map[float64]bool, len(fitness))
	duplicates := 0
	for _, f := range fitness {
		if math.IsNaN(f) {
			continue
		}
		if seen[f] {
			duplicates++
		} else {
			seen[f] = true
		}
	}
	return duplicates
}
