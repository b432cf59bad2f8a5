package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesSamples(t *testing.T) {
	path := writeTemp(t, "12,2,15\n15,4,21\n")
	samples, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 {
		t.Fatalf("len(samples) = %d, want 2", len(samples))
	}
	if samples[0].Target != 15 || samples[0].Input[0] != 12 || samples[0].Input[1] != 2 {
		t.Errorf("sample 0 = %+v", samples[0])
	}
}

func TestLoadRejectsRaggedRows(t *testing.T) {
	path := writeTemp(t, "1,2,3\n1,2\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a ragged row")
	}
}

func TestLoadRejectsNonNumeric(t *testing.T) {
	path := writeTemp(t, "1,x,3\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a non-numeric field")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := writeTemp(t, "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an empty dataset")
	}
}
