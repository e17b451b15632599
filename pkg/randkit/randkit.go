// Package randkit holds the random primitives of the randomized enumeration strategies.
//
// Randomness is always an explicit dependency.
// A strategy receives a Source at construction and never reaches for a package level generator,
// so a generation run can be reproduced from its seed.
package randkit

import (
	"math/rand/v2"
)

// Source is the randomness a randomized strategy draws from.
//
// *rand.Rand from math/rand/v2 implements it,
// and so does the *random.Random of go.llib.dev/testcase.
type Source interface {
	// IntN returns a pseudo-random number in the half-open interval [0,n).
	// It panics if n <= 0.
	IntN(n int) int
}

// New returns a reproducible Source seeded with seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fresh returns a Source seeded from the runtime's random state.
// Every call returns an independent source.
func Fresh() *rand.Rand {
	return New(rand.Uint64())
}

// Shuffle randomizes the order of vs in place with the Fisher-Yates algorithm.
func Shuffle[T any](src Source, vs []T) {
	for i := len(vs) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		vs[i], vs[j] = vs[j], vs[i]
	}
}

// Percentage returns a random percentage in [0,100].
func Percentage(src Source) int {
	return src.IntN(101)
}
