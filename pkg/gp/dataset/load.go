package dataset

import (
	"bufio"
	"fmt"
	"os"

	"github.com/RenatoUtsch/compnat/pkg/numeric"
)

// Load reads a GP dataset file: one sample per line, comma-separated,
// "x1,x2,...,xk,y" with no header (spec.md §6). The last field on each
// line is the target; the rest form the input vector. Every row must
// parse to the same field count as the first row.
func Load(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening %s: %w", path, err)
	}
	defer f.Close()

	var samples []Sample
	fieldCount := -1
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := numeric.SplitFields(line, ',')
		if fieldCount == -1 {
			fieldCount = len(fields)
		} else if len(fields) != fieldCount {
			return nil, fmt.Errorf("dataset: %s line %d: expected %d fields, got %d", path, lineNum, fieldCount, len(fields))
		}
		values, err := numeric.ParseFloats(fields)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s line %d: %w", path, lineNum, err)
		}
		samples = append(samples, Sample{
			Input:  values[:len(values)-1],
			Target: values[len(values)-1],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: reading %s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("dataset: %s contains no samples", path)
	}
	return samples, nil
}
