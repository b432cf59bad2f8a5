// Package engine implements the ACO construction/update loop for the
// capacitated p-median problem (spec.md §4.C10-12), grounded on
// tp2/aco.cpp minus its unused information-heuristic term (see
// DESIGN.md).
package engine

import (
	"fmt"
	"math"
	"os"

	"github.com/RenatoUtsch/compnat/pkg/aco/gap"
	"github.com/RenatoUtsch/compnat/pkg/aco/pmedian"
	"github.com/RenatoUtsch/compnat/pkg/rng"
)

const (
	tauInit             = 0.5
	tauMin              = 0.001
	tauMax              = 0.999
	stagnationThreshold = 0.5
)

// Config is the ACO run configuration (SPEC_FULL.md §3).
type Config struct {
	Seed          uint32
	NumAnts       int // -1 means n - p
	NumExecutions int
	NumIterations int
	Decay         float64
	OutputFormat  string
}

// NewConfig validates format and returns a Config.
func NewConfig(seed uint32, numAnts, numExecutions, numIterations int, decay float64, format string) (*Config, error) {
	if numExecutions <= 0 {
		return nil, fmt.Errorf("engine: numExecutions must be positive, got %d", numExecutions)
	}
	if numIterations <= 0 {
		return nil, fmt.Errorf("engine: numIterations must be positive, got %d", numIterations)
	}
	if decay <= 0 {
		return nil, fmt.Errorf("engine: decay must be positive, got %v", decay)
	}
	switch format {
	case "text", "json", "gob":
	default:
		return nil, fmt.Errorf("engine: unknown output format %q", format)
	}
	return &Config{
		Seed:          seed,
		NumAnts:       numAnts,
		NumExecutions: numExecutions,
		NumIterations: numIterations,
		Decay:         decay,
		OutputFormat:  format,
	}, nil
}

// Solution is one candidate median set and its GAP-scored total distance.
// Distance starts at +Inf so any real evaluation replaces it (spec.md §3).
type Solution struct {
	Distance float64
	Medians  []int
}

func infiniteSolution() Solution {
	return Solution{Distance: math.Inf(1)}
}

// SelectMedians draws p indices without replacement via pure
// pheromone-proportional roulette (spec.md §4.C12: no alpha/beta
// heuristic term — see DESIGN.md for why the original's informationHeuristic_
// is not reintroduced). Returns the chosen medians and the complement as
// clients.
func SelectMedians(r *rng.Source, pheromones []float64, p int) (medians, clients []int) {
	n := len(pheromones)
	unselected := make([]int, n)
	for i := range unselected {
		unselected[i] = i
	}

	medians = make([]int, 0, p)
	for i := 0; i < p; i++ {
		var sum float64
		for _, idx := range unselected {
			sum += pheromones[idx]
		}
		draw := r.Float(sum)

		var boundary float64
		chosenPos := len(unselected) - 1
		for pos, idx := range unselected {
			boundary += pheromones[idx]
			if draw <= boundary {
				chosenPos = pos
				break
			}
		}
		medians = append(medians, unselected[chosenPos])
		unselected = append(unselected[:chosenPos], unselected[chosenPos+1:]...)
	}

	clients = unselected
	return medians, clients
}

// UpdatePheromones applies the min/max-clamped pheromone update for every
// median in localBest and replaces globalBest if localBest improves on it
// (spec.md §4.C12). When localWorst.Distance <= localBest.Distance (for
// example a single feasible ant), delta is taken as 1. Callers exclude infeasible (+Inf) solutions from local best/worst before
// calling this (spec.md §7 error taxonomy class 3).
func UpdatePheromones(pheromones []float64, decay float64, globalBest *Solution, localBest, localWorst Solution) {
	denom := localWorst.Distance - localBest.Distance
	for _, m := range localBest.Medians {
		var delta float64
		if denom <= 0 {
			delta = 1
		} else {
			delta = 1 - (localBest.Distance-globalBest.Distance)/denom
		}
		update := decay * (delta - pheromones[m])
		pheromones[m] = clamp(pheromones[m]+update, tauMin, tauMax)
	}
	if localBest.Distance < globalBest.Distance {
		*globalBest = localBest
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StagnationCheck reports whether the pheromone vector has saturated
// toward its theoretical min/max bounds (spec.md §4.C12).
func StagnationCheck(pheromones []float64, numMedians int) bool {
	var sum float64
	for _, t := range pheromones {
		sum += t
	}
	numPoints := len(pheromones)
	stagnationSum := float64(numMedians)*tauMax + float64(numPoints-numMedians)*tauMin
	return math.Abs(sum-stagnationSum) < stagnationThreshold
}

// ResetPheromones restores every entry to tauInit.
func ResetPheromones(pheromones []float64) {
	for i := range pheromones {
		pheromones[i] = tauInit
	}
}

// IterationRecord is the per-iteration snapshot spec.md §4.C12 requires.
type IterationRecord struct {
	Iteration  int
	GlobalBest Solution
	LocalBest  Solution
	LocalWorst Solution
	Stagnated  bool
}

// Result is the outcome of one ACO execution.
type Result struct {
	Iterations []IterationRecord
	GlobalBest Solution
}

// Run executes one ACO run of cfg.NumIterations iterations, each
// constructing cfg.NumAnts candidate solutions (spec.md §4.C12).
func Run(r *rng.Source, cfg *Config, dataset *pmedian.Dataset) (*Result, error) {
	n := len(dataset.Points)
	p := dataset.P
	numAnts := cfg.NumAnts
	if numAnts < 0 {
		numAnts = n - p
	}
	if numAnts <= 0 {
		return nil, fmt.Errorf("engine: numAnts resolved to %d, must be positive", numAnts)
	}

	distances := pmedian.Distances(dataset.Points)
	pheromones := make([]float64, n)
	ResetPheromones(pheromones)

	globalBest := infiniteSolution()
	result := &Result{Iterations: make([]IterationRecord, 0, cfg.NumIterations)}

	for it := 0; it < cfg.NumIterations; it++ {
		localBest := infiniteSolution()
		localWorst := Solution{Distance: math.Inf(-1)}
		any := false

		for ant := 0; ant < numAnts; ant++ {
			medians, clients := SelectMedians(r, pheromones, p)
			_, distance, err := gap.Gap(dataset, clients, medians, distances)
			if err != nil {
				// Infeasible solution: infinite cost, excluded from local
				// best/worst (spec.md §7 error taxonomy class 3).
				continue
			}
			any = true
			sol := Solution{Distance: distance, Medians: medians}
			// Two independent checks, not if/else-if: an ant that sets the
			// new local best must still be eligible to also set the new
			// local worst (only possible on the very first feasible ant of
			// the iteration, when both sentinels are still unset).
			if sol.Distance < localBest.Distance {
				localBest = sol
			}
			if sol.Distance > localWorst.Distance {
				localWorst = sol
			}
		}

		if any {
			UpdatePheromones(pheromones, cfg.Decay, &globalBest, localBest, localWorst)
		}
		stagnated := StagnationCheck(pheromones, p)
		if stagnated {
			ResetPheromones(pheromones)
		}

		result.Iterations = append(result.Iterations, IterationRecord{
			Iteration:  it,
			GlobalBest: globalBest,
			LocalBest:  localBest,
			LocalWorst: localWorst,
			Stagnated:  stagnated,
		})
		fmt.Fprintf(os.Stderr, "aco: iteration %d/%d globalBest=%v localBest=%v localWorst=%v\n",
			it+1, cfg.NumIterations, globalBest.Distance, localBest.Distance, localWorst.Distance)
	}

	result.GlobalBest = globalBest
	return result, nil
}
