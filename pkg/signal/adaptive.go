package signal

import (
	"math"

	"github.com/aymanhs/greensplit/pkg/config"
)

// Adaptive allocates green time proportionally to observed queue lengths,
// recomputed at every cycle boundary.
type Adaptive struct{}

// Name returns the policy name.
func (Adaptive) Name() string { return "adaptive" }

// Reallocates is true: queue lengths move, so every cycle gets a fresh
// allocation.
func (Adaptive) Reallocates() bool { return true }

// Allocate computes queue-proportional green durations.
//
// With no queued vehicles there is nothing to prioritize and every approach
// falls back to minGreen. When the budget cannot cover minGreen for every
// approach the constraints are infeasible: everyone gets an equal floor
// share with no clamping, and callers must tolerate durations below
// minGreen. Otherwise proportional shares are rounded, clamped to
// [minGreen, maxGreen], and the total is settled to exactly the budget.
func (Adaptive) Allocate(queues []int, timing config.Timing) Allocation {
	n := len(queues)
	if n == 0 {
		return nil
	}

	totalQueue := 0
	for _, q := range queues {
		totalQueue += q
	}

	alloc := make(Allocation, n)

	if totalQueue == 0 {
		for i := range alloc {
			alloc[i] = timing.MinGreen
		}
		return alloc
	}

	available := timing.AvailableGreen()

	if available < timing.MinGreen*n {
		for i := range alloc {
			alloc[i] = available / n
		}
		return alloc
	}

	for i, q := range queues {
		share := int(math.Round(float64(q) / float64(totalQueue) * float64(available)))
		alloc[i] = clamp(share, timing.MinGreen, timing.MaxGreen)
	}

	total := alloc.Total()
	switch {
	case total > available:
		// Scale everything down, re-clamp, then settle the residual.
		for i := range alloc {
			alloc[i] = clamp(alloc[i]*available/total, timing.MinGreen, timing.MaxGreen)
		}
		settleRoundRobin(alloc, available)
	case total < available:
		distributeLeftover(alloc, queues, available-total, timing.MaxGreen)
	}

	return alloc
}

// distributeLeftover hands each leftover second to the approach with the
// largest queue among those still below maxGreen, lowest index on ties.
// Once every approach sits at the cap the remainder is dealt out round-robin
// past maxGreen: a second given away beats a second lost to all-red.
func distributeLeftover(alloc Allocation, queues []int, leftover, maxGreen int) {
	for leftover > 0 {
		best := -1
		for i, g := range alloc {
			if g >= maxGreen {
				continue
			}
			if best == -1 || queues[i] > queues[best] {
				best = i
			}
		}
		if best == -1 {
			break
		}
		alloc[best]++
		leftover--
	}

	for i := 0; leftover > 0; i++ {
		alloc[i%len(alloc)]++
		leftover--
	}
}
