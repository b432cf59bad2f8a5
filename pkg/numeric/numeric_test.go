package numeric

import "testing"

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		a, b, def, want float64
	}{
		{3, 2, 0, 1.5},
		{3, 0, 0, 0},
		{3, 1e-12, -1, -1},
		{-9, 3, 0, -3},
	}
	for _, tt := range tests {
		if got := SafeDiv(tt.a, tt.b, tt.def); got != tt.want {
			t.Errorf("SafeDiv(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.def, got, tt.want)
		}
	}
}

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats(SplitFields("12,2,15", ','))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{12, 2, 15}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseFloatsError(t *testing.T) {
	if _, err := ParseFloats(SplitFields("1,x,3", ',')); err == nil {
		t.Error("expected error for non-numeric field")
	}
}
