package tree

import (
	"math"
	"testing"

	"github.com/RenatoUtsch/compnat/pkg/rng"
)

func x(i int) *Node { return NewTerminal(OpVar, i, 0) }
func c(v float64) *Node { return NewTerminal(OpConst, 0, v) }

func TestPrimitiveEvaluation(t *testing.T) {
	input := []float64{3, 2}

	tests := []struct {
		name string
		n    *Node
		want float64
	}{
		{"add", NewFunction(OpAdd, x(0), x(1)), 5},
		{"sub", NewFunction(OpSub, x(0), x(1)), 1},
		{"mul", NewFunction(OpMul, x(0), x(1)), 6},
		{"div", NewFunction(OpDiv, x(0), x(1)), 1.5},
		{"div_by_zero", NewFunction(OpDiv, x(0), c(0)), 0},
		{"log2", NewFunction(OpLog2, x(0)), math.Log2(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.n.Eval(input)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Eval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLog2ApproxValue(t *testing.T) {
	n := NewFunction(OpLog2, x(0))
	got := n.Eval([]float64{3})
	want := 1.5849625
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("log2(3) = %v, want %v", got, want)
	}
}

func TestConstTermEvalAndPrint(t *testing.T) {
	n := c(0.185689)
	if got := n.Eval([]float64{99, -1}); got != 0.185689 {
		t.Errorf("Eval = %v, want 0.185689", got)
	}
	if got := n.String(); got != "0.185689" {
		t.Errorf("String = %q, want %q", got, "0.185689")
	}
}

func TestNewConstBounds(t *testing.T) {
	r := rng.New(1)
	for i := 0; i < 1000; i++ {
		n := NewConst(r)
		if n.Const < -1 || n.Const >= 1 {
			t.Fatalf("NewConst = %v, out of [-1, 1)", n.Const)
		}
	}
}

func TestSizeAndHeight(t *testing.T) {
	leaf := x(0)
	if leaf.Size() != 1 || leaf.Height() != 1 {
		t.Fatalf("leaf size/height = %d/%d, want 1/1", leaf.Size(), leaf.Height())
	}

	tree := NewFunction(OpAdd, NewFunction(OpMul, x(0), x(1)), x(1))
	if got := tree.Size(); got != 5 {
		t.Errorf("Size = %d, want 5", got)
	}
	if got := tree.Height(); got != 3 {
		t.Errorf("Height = %d, want 3", got)
	}
}

func TestHeightCapped(t *testing.T) {
	tree := NewFunction(OpAdd, NewFunction(OpMul, x(0), x(1)), x(1))
	if got := tree.HeightCapped(2); got != 2 {
		t.Errorf("HeightCapped(2) = %d, want 2", got)
	}
	if got := tree.HeightCapped(10); got != 3 {
		t.Errorf("HeightCapped(10) = %d, want 3", got)
	}
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	original := NewFunction(OpAdd, x(0), c(0.5))
	clone := original.Clone()

	clone.Children[1].Const = 99
	if original.Children[1].Const == 99 {
		t.Fatal("mutating clone affected original: children are aliased")
	}
	if clone.Children[0] == original.Children[0] {
		t.Fatal("clone shares a child pointer with the original")
	}
}

func TestIsTerminal(t *testing.T) {
	if !x(0).IsTerminal() {
		t.Error("variable node should be terminal")
	}
	if !c(1).IsTerminal() {
		t.Error("const node should be terminal")
	}
	if NewFunction(OpLog2, x(0)).IsTerminal() {
		t.Error("log2 node should not be terminal")
	}
}

func TestStringForm(t *testing.T) {
	tree := NewFunction(OpAdd, x(0), NewFunction(OpDiv, x(1), c(2)))
	got := tree.String()
	want := "(x0 + (x1 / 2))"
	if got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
