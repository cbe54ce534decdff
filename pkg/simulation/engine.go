package simulation

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/aymanhs/greensplit/pkg/arrivals"
	"github.com/aymanhs/greensplit/pkg/config"
	"github.com/aymanhs/greensplit/pkg/intersection"
	"github.com/aymanhs/greensplit/pkg/signal"
)

// Engine drives the second-by-second simulation loop: arrivals, green-slot
// resolution, service, wait accrual, logging. It owns the registry state for
// the duration of a run; nothing else may mutate it concurrently.
type Engine struct {
	timing    config.Timing
	duration  int
	registry  *intersection.Registry
	generator *arrivals.Generator
	allocator signal.Allocator
	sink      EventSink
	peaks     [][]peakWindow

	timePoints []TimePoint
}

// Result is what a finished run hands back to callers.
type Result struct {
	RunID      string
	Strategy   string
	Metrics    Metrics
	TimePoints []TimePoint
}

// NewEngine assembles an engine. A nil sink means events are discarded.
func NewEngine(cfg *config.Config, registry *intersection.Registry, generator *arrivals.Generator, allocator signal.Allocator, sink EventSink) *Engine {
	if sink == nil {
		sink = NoopSink{}
	}
	return &Engine{
		timing:    cfg.Timing,
		duration:  cfg.Simulation.Duration,
		registry:  registry,
		generator: generator,
		allocator: allocator,
		sink:      sink,
		peaks:     buildPeakWindows(cfg.Approaches, cfg.Simulation.Duration),
	}
}

// Run executes the simulation for the configured number of seconds and
// returns the reduced metrics. With zero approaches (or a degenerate
// horizon) the result is zero-valued; that is not an error.
func (e *Engine) Run() Result {
	result := Result{
		RunID:    uuid.NewString(),
		Strategy: e.allocator.Name(),
	}

	if e.registry.Len() == 0 || e.duration <= 0 || e.timing.CycleTime <= 0 {
		return result
	}

	e.registry.ResetCounters()
	e.timePoints = make([]TimePoint, 0, e.duration)

	allocation := e.allocator.Allocate(e.registry.Queues(), e.timing)

	for t := 0; t < e.duration; t++ {
		// Adaptive policies recompute at every cycle boundary; the fixed
		// policy keeps its run-start allocation.
		if t > 0 && t%e.timing.CycleTime == 0 && e.allocator.Reallocates() {
			allocation = e.allocator.Allocate(e.registry.Queues(), e.timing)
		}

		e.stepArrivals(t)

		activeIdx := allocation.ActiveAt(t % e.timing.CycleTime)

		passed := 0
		if activeIdx >= 0 {
			passed = e.serve(e.registry.At(activeIdx))
		}

		totalQueue := e.accrueWait()

		event := Event{
			TimeSec:        t,
			ApproachID:     AllRedApproachID,
			VehiclesPassed: passed,
		}
		if activeIdx >= 0 {
			event.ApproachID = e.registry.At(activeIdx).ID
		}
		e.record(event)

		e.timePoints = append(e.timePoints, TimePoint{
			TimeSec:        t,
			TotalQueue:     totalQueue,
			ActiveApproach: event.ApproachID,
		})
	}

	result.Metrics = ComputeMetrics(e.registry, e.duration)
	result.TimePoints = e.timePoints
	return result
}

// stepArrivals samples each approach's arrival process for one second and
// folds the post-arrival queue into the time-average accumulator.
func (e *Engine) stepArrivals(t int) {
	for i := 0; i < e.registry.Len(); i++ {
		approach := e.registry.At(i)

		lambda := approach.ArrivalRate
		if i < len(e.peaks) {
			lambda *= multiplierAt(e.peaks[i], t)
		}

		arrived := e.generator.Sample(lambda)
		approach.Queue += arrived
		approach.TotalArrived += arrived
		approach.CumQueueLength += int64(approach.Queue)
	}
}

// serve discharges vehicles from the active approach: the service rate
// truncated to whole vehicles per second, never more than are queued.
func (e *Engine) serve(approach *intersection.Approach) int {
	capacity := int(approach.ServiceRate)
	if capacity > approach.Queue {
		capacity = approach.Queue
	}
	approach.Queue -= capacity
	approach.TotalServed += capacity
	return capacity
}

// accrueWait charges every still-queued vehicle one more second of waiting,
// all-red seconds included, and returns the total queue for charting.
func (e *Engine) accrueWait() int {
	total := 0
	for i := 0; i < e.registry.Len(); i++ {
		approach := e.registry.At(i)
		approach.CumulativeWait += int64(approach.Queue)
		total += approach.Queue
	}
	return total
}

// record hands the event to the sink. A failing sink is reported once and
// demoted to the no-op sink; logging trouble never aborts a run.
func (e *Engine) record(event Event) {
	if err := e.sink.Record(event); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: event logging disabled: %v\n", err)
		e.sink = NoopSink{}
	}
}
