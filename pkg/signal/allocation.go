// Package signal computes per-cycle green-time allocations for the
// approaches of a signalized intersection.
package signal

import (
	"github.com/aymanhs/greensplit/pkg/config"
)

// Allocation maps each approach, by registry position, to its green duration
// in seconds for one cycle.
type Allocation []int

// Total returns the sum of all allocated green seconds.
func (a Allocation) Total() int {
	total := 0
	for _, g := range a {
		total += g
	}
	return total
}

// ActiveAt resolves which approach holds the green at the given second of
// the cycle by walking the allocation in registry order. It returns -1 for
// seconds in the all-red tail beyond the sum of green durations.
func (a Allocation) ActiveAt(sec int) int {
	running := 0
	for i, g := range a {
		if sec < running+g {
			return i
		}
		running += g
	}
	return -1
}

// Allocator computes one cycle's green-time allocation from a snapshot of
// the current queue lengths. Implementations are pure: they never mutate
// registry state.
type Allocator interface {
	Allocate(queues []int, timing config.Timing) Allocation
	// Reallocates reports whether the policy wants a fresh allocation at
	// every cycle boundary, as opposed to once per run.
	Reallocates() bool
	Name() string
}

// ForStrategy returns the allocator implementing the named strategy.
func ForStrategy(s config.Strategy) Allocator {
	if s == config.StrategyAdaptive {
		return Adaptive{}
	}
	return Fixed{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
