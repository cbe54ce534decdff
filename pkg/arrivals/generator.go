// Package arrivals produces per-second vehicle arrival counts from a mean
// arrival rate using Knuth's Poisson sampling method.
package arrivals

import (
	"math"
	"math/rand"
)

// maxIterations caps the Knuth loop so pathological rates cannot spin
// forever; on hitting the cap the sample is truncated, not rejected.
const maxIterations = 1000

// Generator samples Poisson-distributed arrival counts from its own seeded
// random source, so independent runs can be compared deterministically.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Reseed resets the random source, making a rerun reproduce the same
// arrival sequence.
func (g *Generator) Reseed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Sample returns a non-negative integer approximating a Poisson draw with
// mean lambda over a one-second interval. Non-positive lambda yields 0.
func (g *Generator) Sample(lambda float64) int {
	if lambda <= 0 {
		return 0
	}

	limit := math.Exp(-lambda)
	count := 0
	product := 1.0
	for product > limit && count < maxIterations {
		count++
		product *= g.rng.Float64()
	}
	return count - 1
}
