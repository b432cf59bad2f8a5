// Package operator implements the GP genetic operators: tournament
// selection, subtree crossover, subtree mutation and new-generation
// assembly (spec.md §4.C6), grounded on tp1/genetic_operators.cpp.
package operator

import (
	"math"

	"github.com/RenatoUtsch/compnat/pkg/gp/dataset"
	"github.com/RenatoUtsch/compnat/pkg/gp/generate"
	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
	"github.com/RenatoUtsch/compnat/pkg/rng"
)

// less reports whether a should be preferred over b in a fitness
// comparison that minimizes. NaN is treated as worse than any finite
// value so it can never win a tournament (spec.md §7 error taxonomy
// class 4).
func less(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

// TournamentSelection draws k indices uniformly with replacement from
// [0, len(fitness)) and returns the index with the smallest fitness.
// Duplicates in the sample are allowed, not deduplicated (spec.md §4.C6).
func TournamentSelection(r *rng.Source, k int, fitness []float64) int {
	best := r.Int(0, len(fitness)-1)
	for i := 1; i < k; i++ {
		candidate := r.Int(0, len(fitness)-1)
		if less(fitness[candidate], fitness[best]) {
			best = candidate
		}
	}
	return best
}

// RandomTreePoint picks a uniformly random node across root's size nodes
// via depth-first enumeration, returning the selected node and its height
// (root = 1). The order is deterministic given the child visitation order
// (spec.md §4.C6).
func RandomTreePoint(r *rng.Source, root *tree.Node, size int) (*tree.Node, int) {
	target := r.Int(0, size-1)
	idx := 0
	var result *tree.Node
	var resultHeight int

	var walk func(n *tree.Node, height int) bool
	walk = func(n *tree.Node, height int) bool {
		if idx == target {
			result = n
			resultHeight = height
			return true
		}
		idx++
		for _, c := range n.Children {
			if walk(c, height+1) {
				return true
			}
		}
		return false
	}
	walk(root, 1)
	return result, resultHeight
}

// Crossover deep-copies parentX and parentY, swaps a randomly chosen
// subtree between the copies, and rejects (reverts to the untouched
// parent) any child whose resulting height would exceed maxHeight. Each
// child survives or is rejected independently (spec.md §4.C6).
func Crossover(r *rng.Source, parentX *tree.Node, sizeX int, parentY *tree.Node, sizeY int, maxHeight int) (*tree.Node, *tree.Node) {
	childX := parentX.Clone()
	childY := parentY.Clone()

	nodeX, hX := RandomTreePoint(r, childX, sizeX)
	nodeY, hY := RandomTreePoint(r, childY, sizeY)

	heightY := nodeY.Height()
	heightX := nodeX.Height()

	resultHeightX := hX + heightY - 1
	resultHeightY := hY + heightX - 1

	swappedX := nodeY.Clone()
	swappedY := nodeX.Clone()

	*nodeX = *swappedX
	*nodeY = *swappedY

	if resultHeightX > maxHeight {
		childX = parentX.Clone()
	}
	if resultHeightY > maxHeight {
		childY = parentY.Clone()
	}
	return childX, childY
}

// Mutation deep-copies parent, picks a random node (node, h), and
// overwrites it with a freshly grown subtree of max height
// maxHeight-h+1, so the overall tree never exceeds maxHeight.
func Mutation(r *rng.Source, parent *tree.Node, size int, maxHeight int, functions []tree.Op, terminals []tree.TerminalSpec) *tree.Node {
	child := parent.Clone()
	node, h := RandomTreePoint(r, child, size)
	replacement := generate.Grow(r, maxHeight-h+1, functions, terminals)
	*node = *replacement
	return child
}

// Provenance records, for each new individual, the parent fitness its
// improvement should be measured against: the average of its crossover
// parents' fitness, or its single mutation parent's fitness.
type Provenance struct {
	IsCrossover   bool
	ParentFitness float64
}

// NewGeneration assembles the next population from parents (spec.md
// §4.C6): with elitism, a copy of the best parent comes first; then
// tournament-selected pairs contribute either two crossover children or
// two independent mutations until the population count is reached
// (dropping the last individual if elitism + pair appends overshoot by
// one).
func NewGeneration(r *rng.Source, params *dataset.Params, parents []*tree.Node, parentFitness []float64, parentSizes []int) ([]*tree.Node, []Provenance) {
	n := len(parents)
	newPop := make([]*tree.Node, 0, n+1)
	provenance := make([]Provenance, 0, n+1)

	if params.Elitism {
		bestIdx := 0
		for i := 1; i < n; i++ {
			if less(parentFitness[i], parentFitness[bestIdx]) {
				bestIdx = i
			}
		}
		newPop = append(newPop, parents[bestIdx].Clone())
		provenance = append(provenance, Provenance{IsCrossover: false, ParentFitness: parentFitness[bestIdx]})
	}

	for len(newPop) < n {
		i := TournamentSelection(r, params.TournamentSize, parentFitness)
		j := TournamentSelection(r, params.TournamentSize, parentFitness)

		if r.Bool(params.CrossoverProb) {
			childX, childY := Crossover(r, parents[i], parentSizes[i], parents[j], parentSizes[j], params.MaxHeight)
			avg := (parentFitness[i] + parentFitness[j]) / 2
			newPop = append(newPop, childX, childY)
			provenance = append(provenance,
				Provenance{IsCrossover: true, ParentFitness: avg},
				Provenance{IsCrossover: true, ParentFitness: avg},
			)
		} else {
			childX := Mutation(r, parents[i], parentSizes[i], params.MaxHeight, params.Functions, params.Terminals)
			childY := Mutation(r, parents[j], parentSizes[j], params.MaxHeight, params.Functions, params.Terminals)
			newPop = append(newPop, childX, childY)
			provenance = append(provenance,
				Provenance{IsCrossover: false, ParentFitness: parentFitness[i]},
				Provenance{IsCrossover: false, ParentFitness: parentFitness[j]},
			)
		}
	}

	if len(newPop) > n {
		newPop = newPop[:n]
		provenance = provenance[:n]
	}
	return newPop, provenance
}
