package enumerate

import (
	"math/rand/v2"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewSeeded returns a reproducible Shuffler: the same seed always yields
// the same permutations in the same order.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// unseeded shuffles with the runtime's randomly seeded generator. Results
// cannot be reproduced; it backs the nil-Shuffler path only.
type unseeded struct{}

func (unseeded) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Unseeded returns the non-reproducible Shuffler used when a filter is
// called without one.
func Unseeded() Shuffler { return unseeded{} }

func shuffler(rnd Shuffler, what string) Shuffler {
	if rnd != nil {
		return rnd
	}
	logger().Warn("enumerate: no random source, shuffle is not reproducible", "set", what)
	return unseeded{}
}
