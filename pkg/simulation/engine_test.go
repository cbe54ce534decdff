package simulation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymanhs/greensplit/pkg/arrivals"
	"github.com/aymanhs/greensplit/pkg/config"
	"github.com/aymanhs/greensplit/pkg/intersection"
	"github.com/aymanhs/greensplit/pkg/signal"
)

func testConfig(duration int) *config.Config {
	return &config.Config{
		Timing:     config.Timing{CycleTime: 120, AllRed: 5, MinGreen: 10, MaxGreen: 60},
		Simulation: config.Simulation{Duration: duration},
	}
}

func testRegistry(t *testing.T, rates []float64) *intersection.Registry {
	t.Helper()
	registry := intersection.NewRegistry()
	for i, rate := range rates {
		require.NoError(t, registry.Add(intersection.NewApproach(i+1, "", 2, rate, 2.0)))
	}
	return registry
}

func TestEngine_EmptyRegistryYieldsZeroMetrics(t *testing.T) {
	engine := NewEngine(testConfig(100), intersection.NewRegistry(), arrivals.NewGenerator(1), signal.Adaptive{}, nil)

	result := engine.Run()

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, Metrics{}, result.Metrics)
	assert.Empty(t, result.TimePoints)
}

func TestEngine_ZeroArrivalSingleApproach(t *testing.T) {
	registry := testRegistry(t, []float64{0})
	engine := NewEngine(testConfig(100), registry, arrivals.NewGenerator(1), signal.Fixed{}, nil)

	result := engine.Run()

	assert.Zero(t, result.Metrics.Throughput)
	assert.Zero(t, result.Metrics.AvgWaitTime)
	assert.Zero(t, result.Metrics.AvgQueueLength)
	assert.Zero(t, result.Metrics.TotalArrived)
}

func TestEngine_CountersStayConsistent(t *testing.T) {
	registry := testRegistry(t, []float64{0.5, 0.4, 0.6, 0.3})
	engine := NewEngine(testConfig(600), registry, arrivals.NewGenerator(7), signal.Adaptive{}, nil)

	result := engine.Run()

	for snapshot := range registry.List() {
		assert.GreaterOrEqual(t, snapshot.Queue, 0)
		assert.LessOrEqual(t, snapshot.TotalServed, snapshot.TotalArrived)
		assert.Equal(t, snapshot.TotalArrived-snapshot.TotalServed, snapshot.Queue)
		assert.GreaterOrEqual(t, snapshot.CumulativeWait, int64(0))
	}

	assert.Len(t, result.TimePoints, 600)
	for _, p := range result.TimePoints {
		assert.GreaterOrEqual(t, p.TotalQueue, 0)
	}
}

func TestEngine_RerunWithSameSeedIsIdentical(t *testing.T) {
	cfg := testConfig(600)
	registry := testRegistry(t, []float64{0.5, 0.4, 0.6, 0.3})
	generator := arrivals.NewGenerator(42)
	engine := NewEngine(cfg, registry, generator, signal.Adaptive{}, nil)

	first := engine.Run()

	// Run resets the counters itself; only the random source needs rewinding.
	generator.Reseed(42)
	second := engine.Run()

	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.TimePoints, second.TimePoints)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestEngine_SeparateRunsWithSameSeedAgree(t *testing.T) {
	cfg := testConfig(600)

	a := NewEngine(cfg, testRegistry(t, []float64{0.5, 0.4}), arrivals.NewGenerator(11), signal.Fixed{}, nil)
	b := NewEngine(cfg, testRegistry(t, []float64{0.5, 0.4}), arrivals.NewGenerator(11), signal.Fixed{}, nil)

	assert.Equal(t, a.Run().Metrics, b.Run().Metrics)
}

// With skewed demand the adaptive policy shifts green time toward the
// heavier approaches, so it should never serve fewer vehicles than the
// fixed equal split on the same arrival sequence.
func TestEngine_AdaptiveThroughputAtLeastFixedOnSkewedDemand(t *testing.T) {
	cfg := testConfig(600)
	rates := []float64{0.5, 0.4, 0.6, 0.3}

	adaptive := NewEngine(cfg, testRegistry(t, rates), arrivals.NewGenerator(42), signal.Adaptive{}, nil).Run()
	fixed := NewEngine(cfg, testRegistry(t, rates), arrivals.NewGenerator(42), signal.Fixed{}, nil).Run()

	assert.GreaterOrEqual(t, adaptive.Metrics.Throughput, fixed.Metrics.Throughput)
}

func TestEngine_EventsCoverEverySecond(t *testing.T) {
	registry := testRegistry(t, []float64{0.5, 0.4})
	sink := NewBufferedSink()
	engine := NewEngine(testConfig(240), registry, arrivals.NewGenerator(3), signal.Fixed{}, sink)

	engine.Run()

	events := sink.Events()
	require.Len(t, events, 240)
	for i, e := range events {
		assert.Equal(t, i, e.TimeSec)
	}

	// Fixed split of a 115s budget leaves seconds 115-119 of each cycle
	// all-red.
	for _, sec := range []int{115, 119, 235} {
		assert.Equal(t, AllRedApproachID, events[sec].ApproachID, "second %d", sec)
		assert.Zero(t, events[sec].VehiclesPassed, "second %d", sec)
	}
	assert.NotEqual(t, AllRedApproachID, events[0].ApproachID)
}

type failingSink struct{}

func (failingSink) Record(Event) error { return errors.New("disk full") }
func (failingSink) Close() error       { return nil }

func TestEngine_SinkFailureDoesNotAbortRun(t *testing.T) {
	registry := testRegistry(t, []float64{0.5})
	engine := NewEngine(testConfig(100), registry, arrivals.NewGenerator(9), signal.Fixed{}, failingSink{})

	result := engine.Run()

	assert.Len(t, result.TimePoints, 100)
	assert.Greater(t, result.Metrics.TotalArrived, 0)
}
