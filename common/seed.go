// Package common holds small helpers shared by the instrument's front ends.
package common

// SeededRNG is a Mulberry32 generator. Scripted performances use it so the
// same seed always renders the same gestures. It is not safe for
// concurrent use.
type SeededRNG struct {
	state uint32
	seed  uint32
}

// NewSeededRNG returns a generator positioned at the start of seed's
// sequence.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{state: seed, seed: seed}
}

// Seed returns the seed the generator was created with.
func (r *SeededRNG) Seed() uint32 { return r.seed }

// Reset rewinds to the start of the sequence.
func (r *SeededRNG) Reset() {
	r.state = r.seed
}

// Random returns the next value in [0, 1).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *SeededRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Random() * float64(n))
}

// Range returns a value in [lo, hi).
func (r *SeededRNG) Range(lo, hi float64) float64 {
	return lo + r.Random()*(hi-lo)
}

// Chance reports true with probability p.
func (r *SeededRNG) Chance(p float64) bool {
	return r.Random() < p
}

// Fork returns an independent generator for stream n of this seed, so
// each contact in a performance can draw from its own sequence.
func (r *SeededRNG) Fork(n int) *SeededRNG {
	return NewSeededRNG(DeriveSeed(r.seed, n))
}

// DeriveSeed mixes base and n into a well-spread seed.
func DeriveSeed(base uint32, n int) uint32 {
	s := base ^ (uint32(n) * 2654435761)
	s = (s ^ (s >> 16)) * 0x85ebca6b
	s = (s ^ (s >> 13)) * 0xc2b2ae35
	return s ^ (s >> 16)
}
