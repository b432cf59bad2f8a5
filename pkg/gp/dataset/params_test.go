package dataset

import (
	"testing"

	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
)

func defaultSets() ([]tree.Op, []tree.TerminalSpec) {
	return tree.Functions, tree.Terminals(2)
}

func TestParamsNormalization(t *testing.T) {
	funcs, terms := defaultSets()

	p, err := NewParams(1, 1, 1, 0, 7, 5, 0.9, true, false, funcs, terms)
	if err != nil {
		t.Fatal(err)
	}
	if p.PopulationSize != 4 {
		t.Errorf("PopulationSize = %d, want 4", p.PopulationSize)
	}

	p, err = NewParams(1, 1, 1, 15, 7, 8, 0.9, true, false, funcs, terms)
	if err != nil {
		t.Fatal(err)
	}
	if p.PopulationSize != 28 {
		t.Errorf("PopulationSize = %d, want 28", p.PopulationSize)
	}
}

func TestParamsRejectsInvalidConfig(t *testing.T) {
	funcs, terms := defaultSets()

	cases := []struct {
		name          string
		numInstances  int
		maxHeight     int
		crossoverProb float64
		functions     []tree.Op
		terminals     []tree.TerminalSpec
	}{
		{"bad numInstances", 0, 7, 0.9, funcs, terms},
		{"bad maxHeight", 1, 1, 0.9, funcs, terms},
		{"bad crossoverProb", 1, 7, 1.0, funcs, terms},
		{"empty functions", 1, 7, 0.9, nil, terms},
		{"empty terminals", 1, 7, 0.9, funcs, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParams(1, tc.numInstances, 1, 10, 7, tc.maxHeight, tc.crossoverProb, false, false, tc.functions, tc.terminals)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
		})
	}
}
