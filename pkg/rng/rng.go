// Package rng provides the single deterministic pseudo-random source used
// by every stochastic decision in the GP and ACO cores. It is always passed
// explicitly by reference down the call stack; nothing in this module keeps
// a process-wide generator (spec.md §4.C2, §9 "RNG passing").
package rng

import "math/rand"

// Source is a seeded, single-threaded pseudo-random source.
type Source struct {
	r *rand.Rand
}

// New creates a Source seeded from seed.
func New(seed uint32) *Source {
	return &Source{r: rand.New(rand.NewSource(int64(seed)))}
}

// Int returns a uniform integer in [a, b], inclusive on both ends.
func (s *Source) Int(a, b int) int {
	if b < a {
		panic("rng: Int called with b < a")
	}
	return a + s.r.Intn(b-a+1)
}

// Float returns a uniform real in [0.0, x).
func (s *Source) Float(x float64) float64 {
	return s.r.Float64() * x
}

// Bool returns true with probability p, p in [0, 1).
func (s *Source) Bool(p float64) bool {
	return s.r.Float64() < p
}

// Uint32 draws a fresh uniform uint32, used to derive per-instance seeds
// for independent runs (tp2/tp2.cpp's generateSeeds_).
func (s *Source) Uint32() uint32 {
	return s.r.Uint32()
}
