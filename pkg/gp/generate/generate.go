// Package generate implements the GP tree generators: grow, full and
// ramped half-and-half (spec.md §4.C5), ported from
// tp1/generators.{hpp,cpp}'s iterative stack-based traversal into plain
// recursion.
package generate

import (
	"github.com/RenatoUtsch/compnat/pkg/gp/dataset"
	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
	"github.com/RenatoUtsch/compnat/pkg/rng"
)

// Grow builds a tree of height at most maxHeight. The root (and every
// non-terminal-forced node) is drawn from functions+terminals combined; at
// any node whose own height is >= maxHeight-1, its children are forced to
// terminals instead of recursing further (spec.md §4.C5). Height 1 is the
// root.
func Grow(r *rng.Source, maxHeight int, functions []tree.Op, terminals []tree.TerminalSpec) *tree.Node {
	if maxHeight <= 1 {
		return pickTerminal(r, terminals)
	}
	return growNode(r, 1, maxHeight, functions, terminals)
}

func growNode(r *rng.Source, height, maxHeight int, functions []tree.Op, terminals []tree.TerminalSpec) *tree.Node {
	total := len(functions) + len(terminals)
	i := r.Int(0, total-1)
	if i >= len(functions) {
		return tree.NewFromSpec(r, terminals[i-len(functions)])
	}

	op := functions[i]
	children := make([]*tree.Node, op.Arity())
	if height >= maxHeight-1 {
		for idx := range children {
			children[idx] = pickTerminal(r, terminals)
		}
	} else {
		for idx := range children {
			children[idx] = growNode(r, height+1, maxHeight, functions, terminals)
		}
	}
	return tree.NewFunction(op, children...)
}

// Full builds a tree where every non-leaf slot is a function until its own
// height is >= maxHeight-1, then a terminal (spec.md §4.C5).
func Full(r *rng.Source, maxHeight int, functions []tree.Op, terminals []tree.TerminalSpec) *tree.Node {
	if maxHeight <= 1 {
		return pickTerminal(r, terminals)
	}
	return fullNode(r, 1, maxHeight, functions, terminals)
}

func fullNode(r *rng.Source, height, maxHeight int, functions []tree.Op, terminals []tree.TerminalSpec) *tree.Node {
	op := functions[r.Int(0, len(functions)-1)]
	children := make([]*tree.Node, op.Arity())
	if height >= maxHeight-1 {
		for idx := range children {
			children[idx] = pickTerminal(r, terminals)
		}
	} else {
		for idx := range children {
			children[idx] = fullNode(r, height+1, maxHeight, functions, terminals)
		}
	}
	return tree.NewFunction(op, children...)
}

func pickTerminal(r *rng.Source, terminals []tree.TerminalSpec) *tree.Node {
	spec := terminals[r.Int(0, len(terminals)-1)]
	return tree.NewFromSpec(r, spec)
}

// RampedHalfAndHalf builds the initial population: for each height
// h in [2, maxHeight], populationSize/(maxHeight-1)/2 grow trees and as
// many full trees. params.PopulationSize is pre-normalized by
// dataset.NewParams (spec.md §4.C5).
func RampedHalfAndHalf(r *rng.Source, params *dataset.Params) []*tree.Node {
	step := params.MaxHeight - 1
	perHeight := params.PopulationSize / step
	perKind := perHeight / 2

	population := make([]*tree.Node, 0, params.PopulationSize)
	for h := 2; h <= params.MaxHeight; h++ {
		for i := 0; i < perKind; i++ {
			population = append(population, Grow(r, h, params.Functions, params.Terminals))
		}
		for i := 0; i < perKind; i++ {
			population = append(population, Full(r, h, params.Functions, params.Terminals))
		}
	}
	return population
}
