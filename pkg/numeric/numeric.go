// Package numeric holds the small set of scalar helpers shared by the GP
// primitive library and the dataset loaders: protected division and the
// field-splitting used to parse CSV records.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Epsilon is the tolerance below which a divisor is treated as zero.
const Epsilon = 1e-9

// SafeDiv returns a/b, or def if |b| <= Epsilon.
func SafeDiv(a, b, def float64) float64 {
	if math.Abs(b) <= Epsilon {
		return def
	}
	return a / b
}

// SplitFields splits a line on sep and trims no whitespace — fields must
// already be clean, matching the CSV format in spec.md §6 ("whitespace
// within fields is not permitted").
func SplitFields(line string, sep byte) []string {
	return strings.Split(line, string(sep))
}

// ParseFloats parses every field in fields as a float64, returning an error
// naming the offending field on the first failure.
func ParseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
