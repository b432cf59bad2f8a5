// Package pmedian holds the capacitated p-median problem data model and
// its dataset loader (spec.md §3 "P-median core", §4.C10), grounded on
// tp2/representation.cpp.
package pmedian

import (
	"bufio"
	"fmt"
	"math"
	"os"
)

// Point is one facility/client candidate: a 2D position plus capacity and
// demand, usable interchangeably as a median or a client.
type Point struct {
	X, Y     float64
	Capacity int
	Demand   int
}

// Dataset is an indexed sequence of points and the number of medians to
// select.
type Dataset struct {
	Points []Point
	P      int
}

// Load reads a p-median dataset: the first line holds "n p"; then n lines
// of "x y capacity demand" (spec.md §6). Points are indexed 0..n-1.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pmedian: opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var n, p int
	if _, err := fmt.Fscan(r, &n, &p); err != nil {
		return nil, fmt.Errorf("pmedian: %s: reading header: %w", path, err)
	}
	if n <= 0 {
		return nil, fmt.Errorf("pmedian: %s: n must be positive, got %d", path, n)
	}
	if p <= 0 || p > n {
		return nil, fmt.Errorf("pmedian: %s: p must be in [1, n], got %d", path, p)
	}

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		var pt Point
		if _, err := fmt.Fscan(r, &pt.X, &pt.Y, &pt.Capacity, &pt.Demand); err != nil {
			return nil, fmt.Errorf("pmedian: %s: reading point %d: %w", path, i, err)
		}
		points[i] = pt
	}
	return &Dataset{Points: points, P: p}, nil
}

// Distances computes the symmetric Euclidean distance matrix between
// every pair of points, zero on the diagonal (spec.md §3).
func Distances(points []Point) [][]float64 {
	n := len(points)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			dist := math.Sqrt(dx*dx + dy*dy)
			d[i][j] = dist
			d[j][i] = dist
		}
	}
	return d
}
