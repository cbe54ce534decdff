package signal

import (
	"github.com/aymanhs/greensplit/pkg/config"
)

// Fixed gives every approach an equal bounded share of the cycle's green
// budget, computed once per run.
type Fixed struct{}

// Name returns the policy name.
func (Fixed) Name() string { return "fixed" }

// Reallocates is false: the fixed split is computed once per run.
func (Fixed) Reallocates() bool { return false }

// Allocate splits the available green time evenly. The equal share is
// clamped to [minGreen, maxGreen]; the difference between the clamped total
// and the budget is then settled one second at a time, round-robin from
// index 0, so the total always equals exactly cycleTime - allRed.
func (Fixed) Allocate(queues []int, timing config.Timing) Allocation {
	n := len(queues)
	if n == 0 {
		return nil
	}

	available := timing.AvailableGreen()
	base := clamp(available/n, timing.MinGreen, timing.MaxGreen)

	alloc := make(Allocation, n)
	for i := range alloc {
		alloc[i] = base
	}

	settleRoundRobin(alloc, available)
	return alloc
}

// settleRoundRobin adds or removes one second at a time, cycling from index
// 0, until the allocation total equals target.
func settleRoundRobin(alloc Allocation, target int) {
	total := alloc.Total()
	for i := 0; total != target; i++ {
		if total < target {
			alloc[i%len(alloc)]++
			total++
		} else {
			alloc[i%len(alloc)]--
			total--
		}
	}
}
