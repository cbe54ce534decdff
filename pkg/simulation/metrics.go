package simulation

import (
	"github.com/aymanhs/greensplit/pkg/intersection"
)

// Metrics is the read-only reduction of a finished run.
type Metrics struct {
	Throughput     int     // total vehicles served
	TotalArrived   int     // total vehicles that arrived
	AvgWaitTime    float64 // seconds per served vehicle, 0 if nothing served
	AvgQueueLength float64 // time-averaged vehicles waiting
}

// ComputeMetrics reduces the registry's counters after a run. Division by
// zero is avoided: no served vehicles means zero average wait, and an empty
// horizon or registry means zero average queue.
func ComputeMetrics(registry *intersection.Registry, totalSimTime int) Metrics {
	var m Metrics
	var cumWait, cumQueue int64

	for snapshot := range registry.List() {
		m.Throughput += snapshot.TotalServed
		m.TotalArrived += snapshot.TotalArrived
		cumWait += snapshot.CumulativeWait
		cumQueue += snapshot.CumQueueLength
	}

	if m.Throughput > 0 {
		m.AvgWaitTime = float64(cumWait) / float64(m.Throughput)
	}

	if totalSimTime > 0 && registry.Len() > 0 {
		m.AvgQueueLength = float64(cumQueue) / float64(totalSimTime*registry.Len())
	}

	return m
}
