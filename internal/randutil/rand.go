// Package randutil derives reproducible random sources for simulation runs.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns the index-th independent generator for a run seeded with
// seed. Workers use one stream each so that a fixed seed and worker count
// always replay the same trials.
func Stream(seed int64, index int) *rand.Rand {
	base := mix(uint64(seed) + uint64(index+1)*goldenRatio64)
	return rand.New(rand.NewPCG(base, mix(base^uint64(index))))
}

// Seed returns seed unless it is zero, in which case a time based seed is
// chosen. The chosen value is returned so callers can log it for replay.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := int64(mix(uint64(time.Now().UnixNano())) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
