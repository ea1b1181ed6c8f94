// Package random provides the seeded, counter-based generator used for every
// random choice in the simulation. All values are pure functions of
// (seed, counter), so runs are reproducible bit for bit on any platform.
package random

import "math/bits"

const (
	c1 = 0xcc9e2d51
	c2 = 0x1b873593
)

// StableHash32 mixes two 32-bit words into one. It is a murmur3 round over
// both words followed by the murmur3 finalizer.
func StableHash32(a, b uint32) uint32 {
	h := uint32(0x9747b28c)
	h = mix(h, a)
	h = mix(h, b)
	h ^= 8
	return fmix(h)
}

func mix(h, k uint32) uint32 {
	k *= c1
	k = bits.RotateLeft32(k, 15)
	k *= c2

	h ^= k
	h = bits.RotateLeft32(h, 13)
	return h*5 + 0xe6546b64
}

func fmix(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Generator draws values for a single seed. The caller owns the counter.
type Generator struct {
	seed uint32
}

// New returns a generator for seed.
func New(seed uint32) Generator {
	return Generator{seed: seed}
}

// Next returns the hash of (seed, *counter) and advances the counter.
func (g Generator) Next(counter *uint32) uint32 {
	h := StableHash32(g.seed, *counter)
	*counter++
	return h
}

// Random returns a value in [0, bound). A non-positive bound yields 0 and
// still advances the counter.
func (g Generator) Random(counter *uint32, bound int) int {
	h := g.Next(counter)
	if bound <= 0 {
		return 0
	}
	return int(uint64(h) * uint64(bound) >> 32)
}

// Between returns a value in [lo, hi]. hi < lo yields lo.
func (g Generator) Between(counter *uint32, lo, hi int) int {
	if hi < lo {
		g.Next(counter)
		return lo
	}
	return lo + g.Random(counter, hi-lo+1)
}

// Source adapts the generator to the index source used by target selection.
type Source struct{}

// NextIndex draws an index in [0, bound) for seed and advances counter.
func (Source) NextIndex(seed uint32, counter *uint32, bound int) int {
	return New(seed).Random(counter, bound)
}
