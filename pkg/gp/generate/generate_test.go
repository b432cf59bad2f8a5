package generate

import (
	"testing"

	"github.com/RenatoUtsch/compnat/pkg/gp/dataset"
	"github.com/RenatoUtsch/compnat/pkg/gp/tree"
	"github.com/RenatoUtsch/compnat/pkg/rng"
)

func TestGrowRespectsMaxHeight(t *testing.T) {
	r := rng.New(1)
	terms := tree.Terminals(3)
	for trial := 0; trial < 200; trial++ {
		n := Grow(r, 5, tree.Functions, terms)
		if n.Size() < 1 {
			t.Fatalf("size = %d, want >= 1", n.Size())
		}
		if h := n.Height(); h > 5 {
			t.Fatalf("height = %d, want <= 5", h)
		}
	}
}

func TestFullRespectsMaxHeight(t *testing.T) {
	r := rng.New(2)
	terms := tree.Terminals(3)
	for trial := 0; trial < 200; trial++ {
		n := Full(r, 5, tree.Functions, terms)
		if n.Size() < 1 {
			t.Fatalf("size = %d, want >= 1", n.Size())
		}
		if h := n.Height(); h > 5 {
			t.Fatalf("height = %d, want <= 5", h)
		}
	}
}

func TestGrowMaxHeightOneIsLeaf(t *testing.T) {
	r := rng.New(3)
	terms := tree.Terminals(2)
	n := Grow(r, 1, tree.Functions, terms)
	if !n.IsTerminal() {
		t.Fatal("Grow with maxHeight=1 should always produce a terminal")
	}
}

func TestRampedHalfAndHalfCount(t *testing.T) {
	terms := tree.Terminals(2)
	params, err := dataset.NewParams(1, 1, 1, 48, 7, 7, 0.9, true, false, tree.Functions, terms)
	if err != nil {
		t.Fatal(err)
	}
	r := rng.New(99)
	population := RampedHalfAndHalf(r, params)
	if len(population) != 48 {
		t.Fatalf("len(population) = %d, want 48", len(population))
	}
	for _, n := range population {
		if h := n.Height(); h > params.MaxHeight {
			t.Fatalf("tree height %d exceeds maxHeight %d", h, params.MaxHeight)
		}
		if n.Size() < 1 {
			t.Fatal("tree size < 1")
		}
	}
}
