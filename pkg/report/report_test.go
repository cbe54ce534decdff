package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aymanhs/greensplit/pkg/simulation"
)

func result(throughput int, wait, queue float64) simulation.Result {
	return simulation.Result{
		RunID:    "test-run",
		Strategy: "adaptive",
		Metrics: simulation.Metrics{
			Throughput:     throughput,
			TotalArrived:   throughput,
			AvgWaitTime:    wait,
			AvgQueueLength: queue,
		},
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		name       string
		adaptive   float64
		fixed      float64
		higherWins bool
		want       string
	}{
		{"higher throughput wins", 120, 100, true, "adaptive"},
		{"lower throughput loses", 90, 100, true, "fixed"},
		{"lower wait wins", 3.5, 4.0, false, "adaptive"},
		{"higher wait loses", 5.0, 4.0, false, "fixed"},
		{"equal is a tie", 4.0, 4.0, false, "tie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, verdict(tt.adaptive, tt.fixed, tt.higherWins))
		})
	}
}

func TestGenerateComparison(t *testing.T) {
	g := NewGenerator()

	out := g.GenerateComparison(result(120, 3.5, 2.0), result(100, 4.0, 2.0))

	assert.Contains(t, out, "Strategy Comparison")
	assert.Contains(t, out, "Throughput")
	// throughput and wait favor adaptive, queue ties
	assert.Equal(t, 2, strings.Count(out, "adaptive\n"))
	assert.Contains(t, out, "tie")
}

func TestGenerateSummary(t *testing.T) {
	g := NewGenerator()

	out := g.GenerateSummary(result(50, 5.0, 3.0))

	assert.Contains(t, out, "test-run")
	assert.Contains(t, out, "Throughput:         50 vehicles")
	assert.Contains(t, out, "5.00 s/vehicle")
	assert.Contains(t, out, "3.00 vehicles")
}

func TestGenerateQueueChart(t *testing.T) {
	g := NewGenerator()

	assert.Equal(t, "No data to display", g.GenerateQueueChart(nil))

	points := make([]simulation.TimePoint, 200)
	for i := range points {
		points[i] = simulation.TimePoint{TimeSec: i, TotalQueue: i % 17}
	}
	out := g.GenerateQueueChart(points)

	assert.Contains(t, out, "Queued Vehicles Over Time")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "199s")
}

func TestGenerateQueueChart_AllZero(t *testing.T) {
	g := NewGenerator()

	points := []simulation.TimePoint{{TimeSec: 0}, {TimeSec: 1}, {TimeSec: 2}}
	out := g.GenerateQueueChart(points)

	assert.NotContains(t, out, "█")
}

func TestGenerateTimeline_TruncatesAtLimit(t *testing.T) {
	g := NewGenerator()

	events := []simulation.Event{
		{TimeSec: 0, ApproachID: 1, VehiclesPassed: 2},
		{TimeSec: 1, ApproachID: 1, VehiclesPassed: 0},
		{TimeSec: 2, ApproachID: simulation.AllRedApproachID},
		{TimeSec: 3, ApproachID: 2, VehiclesPassed: 1},
	}

	out := g.GenerateTimeline(events, 3)

	assert.Contains(t, out, "showing first 3 seconds")
	assert.Contains(t, out, "all-red")
	assert.Contains(t, out, "... and 1 more seconds")
	assert.NotContains(t, out, "approach 2")
}
