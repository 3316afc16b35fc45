// Package randutil derives reproducible random sources from int64 seeds.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so that a single number is
// enough to replay an episode.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewSeed returns a fresh non-zero seed from the operating system's entropy
// source. Zero is reserved to mean "pick one for me".
func NewSeed() int64 {
	var buf [8]byte
	for {
		if _, err := crand.Read(buf[:]); err != nil {
			panic("randutil: reading entropy: " + err.Error())
		}
		if s := int64(binary.LittleEndian.Uint64(buf[:]) >> 1); s != 0 {
			return s
		}
	}
}

// Resolve returns seed unchanged unless it is zero, in which case a new
// random seed is chosen.
func Resolve(seed int64) int64 {
	if seed == 0 {
		return NewSeed()
	}
	return seed
}

// Derive returns the seed for the i-th episode of a run. The result depends
// only on (seed, i), never on scheduling, and is never zero.
func Derive(seed int64, i int) int64 {
	d := int64(mix(uint64(seed)^mix(uint64(i)+goldenRatio64)) >> 1)
	if d == 0 {
		return 1
	}
	return d
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
