package engine

import "math/rand"

// Source is the minimal random interface the engine draws from.
// *rand.Rand satisfies it; tests substitute scripted sequences.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// RNG wraps a random source with deterministic position tracking.
// Position increments with every draw, enabling replay verification.
type RNG struct {
	src Source
	pos int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed))}
}

// NewRNGFrom creates an RNG over a caller-supplied source.
func NewRNGFrom(src Source) *RNG {
	return &RNG{src: src}
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	r.pos++
	return r.src.Float64() < p
}

// Bonus returns a uniform random integer in [0, max].
func (r *RNG) Bonus(max int) int {
	r.pos++
	if max <= 0 {
		return 0
	}
	return r.src.Intn(max + 1)
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	r.pos++
	return r.src.Intn(sides) + 1
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
