// Package gap implements the generalized-assignment-problem heuristic
// used to score an ACO candidate median set (spec.md §4.C10-12), grounded
// on tp2/gap.cpp and tp2/aco.cpp's distance accumulation.
package gap

import (
	"fmt"
	"sort"

	"github.com/RenatoUtsch/compnat/pkg/aco/pmedian"
)

// Assignment maps every point index to the median index it was assigned
// to. Medians are assigned to themselves.
type Assignment []int

// Gap performs the capacity-feasible greedy assignment described in
// spec.md §4.C10-12: clients are sorted by demand descending (the source
// comments call the published nearest-median ordering broken under
// capacity constraints — preserved deviation, not a bug); each client is
// then assigned to the first median in its distance-ascending candidate
// list with enough residual capacity. Returns the full assignment and the
// total client-to-median distance (medians contribute zero). Fails with an
// error if any client cannot be placed (spec.md §7 error taxonomy class
// 3).
func Gap(dataset *pmedian.Dataset, clients, medians []int, distances [][]float64) (Assignment, float64, error) {
	residual := make(map[int]int, len(medians))
	for _, m := range medians {
		p := dataset.Points[m]
		residual[m] = p.Capacity - p.Demand
	}

	assignment := make(Assignment, len(dataset.Points))
	for i := range assignment {
		assignment[i] = -1
	}
	for _, m := range medians {
		assignment[m] = m
	}

	type candidate struct {
		median int
		dist   float64
	}
	sortedClients := append([]int(nil), clients...)
	sort.Slice(sortedClients, func(i, j int) bool {
		return dataset.Points[sortedClients[i]].Demand > dataset.Points[sortedClients[j]].Demand
	})

	var totalDistance float64
	for _, c := range sortedClients {
		candidates := make([]candidate, len(medians))
		for i, m := range medians {
			candidates[i] = candidate{median: m, dist: distances[c][m]}
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

		demand := dataset.Points[c].Demand
		placed := false
		for _, cand := range candidates {
			if residual[cand.median] >= demand {
				residual[cand.median] -= demand
				assignment[c] = cand.median
				totalDistance += cand.dist
				placed = true
				break
			}
		}
		if !placed {
			return nil, 0, fmt.Errorf("gap: no median can accept client %d (demand %d)", c, demand)
		}
	}
	return assignment, totalDistance, nil
}
