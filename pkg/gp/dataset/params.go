// Package dataset holds the GP run configuration (spec.md §3 "Parameters
// (GP)") and the CSV sample loader (SPEC_FULL.md A2), grounded on
// tp1/parser.hpp's split/loadDataset and the original Params constructor.
package dataset

import (
	"fmt"

	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
)

// Sample is one (input vector, expected target) pair.
type Sample struct {
	Input  []float64
	Target float64
}

// Params is the immutable GP run configuration (spec.md §3). Construct it
// with NewParams, never with a literal, so the populationSize
// normalization rule always runs.
type Params struct {
	Seed           uint32
	NumInstances   int
	NumGenerations int
	PopulationSize int
	TournamentSize int
	MaxHeight      int
	CrossoverProb  float64
	Elitism        bool
	AlwaysTest     bool
	Functions      []tree.Op
	Terminals      []tree.TerminalSpec
}

// NewParams builds a Params, normalizing populationSize so it is >=
// maxHeight-1, a multiple of maxHeight-1, and even — rounding up by
// maxHeight-1 as needed (spec.md §3). Returns an error for any value in
// error taxonomy class 2 (spec.md §7): negative sizes, crossoverProb
// outside [0,1), empty function/terminal lists, or maxHeight < 2.
func NewParams(
	seed uint32,
	numInstances, numGenerations, populationSize, tournamentSize, maxHeight int,
	crossoverProb float64,
	elitism, alwaysTest bool,
	functions []tree.Op, terminals []tree.TerminalSpec,
) (*Params, error) {
	if numInstances <= 0 {
		return nil, fmt.Errorf("dataset: numInstances must be positive, got %d", numInstances)
	}
	if numGenerations < 0 {
		return nil, fmt.Errorf("dataset: numGenerations must be >= 0, got %d", numGenerations)
	}
	if populationSize < 0 {
		return nil, fmt.Errorf("dataset: populationSize must be >= 0, got %d", populationSize)
	}
	if tournamentSize <= 0 {
		return nil, fmt.Errorf("dataset: tournamentSize must be positive, got %d", tournamentSize)
	}
	if maxHeight < 2 {
		return nil, fmt.Errorf("dataset: maxHeight must be >= 2, got %d", maxHeight)
	}
	if crossoverProb < 0 || crossoverProb >= 1 {
		return nil, fmt.Errorf("dataset: crossoverProb must be in [0,1), got %v", crossoverProb)
	}
	if len(functions) == 0 {
		return nil, fmt.Errorf("dataset: function list must not be empty")
	}
	if len(terminals) == 0 {
		return nil, fmt.Errorf("dataset: terminal list must not be empty")
	}

	step := maxHeight - 1
	normalized := populationSize
	if normalized < step {
		normalized = step
	}
	if rem := normalized % step; rem != 0 {
		normalized += step - rem
	}
	if normalized%2 != 0 {
		normalized += step
	}

	return &Params{
		Seed:           seed,
		NumInstances:   numInstances,
		NumGenerations: numGenerations,
		PopulationSize: normalized,
		TournamentSize: tournamentSize,
		MaxHeight:      maxHeight,
		CrossoverProb:  crossoverProb,
		Elitism:        elitism,
		AlwaysTest:     alwaysTest,
		Functions:      functions,
		Terminals:      terminals,
	}, nil
}
