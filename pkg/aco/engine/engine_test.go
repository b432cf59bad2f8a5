package engine

import (
	"math"
	"testing"

	"github.com/RenatoUtsch/compnat/pkg/aco/pmedian"
	"github.com/RenatoUtsch/compnat/pkg/rng"
)

func TestSelectMediansDistinctAndComplementary(t *testing.T) {
	r := rng.New(1)
	pheromones := []float64{0.5, 0.5, 0.5, 0.5, 0.5}
	for trial := 0; trial < 100; trial++ {
		medians, clients := SelectMedians(r, pheromones, 2)
		if len(medians) != 2 {
			t.Fatalf("len(medians) = %d, want 2", len(medians))
		}
		seen := map[int]bool{}
		for _, m := range medians {
			if seen[m] {
				t.Fatalf("duplicate median %d", m)
			}
			seen[m] = true
		}
		if len(clients) != len(pheromones)-2 {
			t.Fatalf("len(clients) = %d, want %d", len(clients), len(pheromones)-2)
		}
		for _, c := range clients {
			if seen[c] {
				t.Fatalf("client %d also appears as a median", c)
			}
		}
	}
}

func TestUpdatePheromonesPheromoneBounds(t *testing.T) {
	pheromones := []float64{0.5, 0.5, 0.5}
	globalBest := Solution{Distance: 10, Medians: []int{0, 1}}
	localBest := Solution{Distance: 5, Medians: []int{0, 1}}
	localWorst := Solution{Distance: 20, Medians: []int{0, 2}}

	for trial := 0; trial < 50; trial++ {
		UpdatePheromones(pheromones, 0.3, &globalBest, localBest, localWorst)
		for i, tau := range pheromones {
			if tau < tauMin || tau > tauMax {
				t.Fatalf("pheromones[%d] = %v, out of [%v, %v]", i, tau, tauMin, tauMax)
			}
		}
	}
}

func TestUpdatePheromonesReplacesGlobalBest(t *testing.T) {
	pheromones := []float64{0.5, 0.5}
	globalBest := Solution{Distance: 10, Medians: []int{0}}
	localBest := Solution{Distance: 3, Medians: []int{0}}
	localWorst := Solution{Distance: 8, Medians: []int{1}}

	UpdatePheromones(pheromones, 0.1, &globalBest, localBest, localWorst)
	if globalBest.Distance != 3 {
		t.Errorf("globalBest.Distance = %v, want 3", globalBest.Distance)
	}
}

func TestStagnationResetsToInitial(t *testing.T) {
	n, p := 5, 2
	pheromones := make([]float64, n)
	for i := 0; i < p; i++ {
		pheromones[i] = tauMax
	}
	for i := p; i < n; i++ {
		pheromones[i] = tauMin
	}
	if !StagnationCheck(pheromones, p) {
		t.Fatal("expected stagnation at theoretical min/max saturation")
	}
	ResetPheromones(pheromones)
	for i, tau := range pheromones {
		if tau != tauInit {
			t.Errorf("pheromones[%d] = %v, want %v after reset", i, tau, tauInit)
		}
	}
}

func TestRunProducesIterationRecords(t *testing.T) {
	dataset := &pmedian.Dataset{
		Points: []pmedian.Point{
			{X: 0, Y: 0, Capacity: 10, Demand: 0},
			{X: 10, Y: 10, Capacity: 10, Demand: 0},
			{X: 1, Y: 1, Capacity: 0, Demand: 2},
			{X: 9, Y: 9, Capacity: 0, Demand: 3},
			{X: 2, Y: 2, Capacity: 0, Demand: 1},
		},
		P: 2,
	}
	cfg, err := NewConfig(1, -1, 1, 5, 0.1, "text")
	if err != nil {
		t.Fatal(err)
	}
	r := rng.New(cfg.Seed)
	result, err := Run(r, cfg, dataset)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Iterations) != cfg.NumIterations {
		t.Fatalf("len(Iterations) = %d, want %d", len(result.Iterations), cfg.NumIterations)
	}
	if math.IsInf(result.GlobalBest.Distance, 1) {
		t.Error("GlobalBest should have been replaced by a feasible solution")
	}
}
