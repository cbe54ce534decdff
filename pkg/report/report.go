// Package report renders simulation results for the console: an ASCII chart
// of queue depth over time, metric summaries, the adaptive-vs-fixed
// comparison, and a per-second event timeline.
package report

import (
	"fmt"
	"strings"

	"github.com/aymanhs/greensplit/pkg/simulation"
)

const (
	reportWidth = 80
	chartHeight = 15
)

// Generator generates ASCII output sections.
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a generator with the default dimensions.
func NewGenerator() *Generator {
	return &Generator{
		width:  reportWidth,
		height: chartHeight,
	}
}

// GenerateQueueChart plots the total number of queued vehicles over the run.
func (g *Generator) GenerateQueueChart(points []simulation.TimePoint) string {
	if len(points) == 0 {
		return "No data to display"
	}

	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Queued Vehicles Over Time\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	maxQueue := 0
	for _, p := range points {
		if p.TotalQueue > maxQueue {
			maxQueue = p.TotalQueue
		}
	}
	if maxQueue == 0 {
		maxQueue = 1
	}

	plotWidth := g.width - 7

	// Downsample the run onto the plot columns.
	columns := make([]int, plotWidth)
	for x := 0; x < plotWidth; x++ {
		idx := x * (len(points) - 1) / max(plotWidth-1, 1)
		columns[x] = points[idx].TotalQueue
	}

	for row := g.height; row >= 1; row-- {
		threshold := float64(row) / float64(g.height) * float64(maxQueue)
		sb.WriteString(fmt.Sprintf("%4d |", int(threshold)))
		for _, q := range columns {
			if float64(q) >= threshold {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("     +")
	sb.WriteString(strings.Repeat("-", plotWidth))
	sb.WriteString("\n")

	// X-axis marks at the start, middle and end of the horizon.
	last := points[len(points)-1].TimeSec
	axis := make([]rune, plotWidth)
	for i := range axis {
		axis[i] = ' '
	}
	placeMark(axis, 0, "0s")
	placeMark(axis, plotWidth/2, fmt.Sprintf("%ds", last/2))
	endMark := fmt.Sprintf("%ds", last)
	placeMark(axis, plotWidth-len(endMark), endMark)
	sb.WriteString("      ")
	sb.WriteString(string(axis))
	sb.WriteString("\n")

	return sb.String()
}

func placeMark(axis []rune, pos int, mark string) {
	if pos < 0 {
		pos = 0
	}
	for i, ch := range mark {
		if pos+i < len(axis) {
			axis[pos+i] = ch
		}
	}
}

// GenerateSummary renders one run's metrics.
func (g *Generator) GenerateSummary(result simulation.Result) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Simulation Summary (%s)\n", result.Strategy))
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Run ID: %s\n", result.RunID))
	sb.WriteString(fmt.Sprintf("  - Vehicles Arrived:   %d\n", result.Metrics.TotalArrived))
	sb.WriteString(fmt.Sprintf("  - Throughput:         %d vehicles\n", result.Metrics.Throughput))
	sb.WriteString(fmt.Sprintf("  - Avg Wait Time:      %.2f s/vehicle\n", result.Metrics.AvgWaitTime))
	sb.WriteString(fmt.Sprintf("  - Avg Queue Length:   %.2f vehicles\n", result.Metrics.AvgQueueLength))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateComparison renders adaptive and fixed metrics side by side with a
// per-metric verdict. Higher throughput wins; lower wait and queue win.
func (g *Generator) GenerateComparison(adaptive, fixed simulation.Result) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Strategy Comparison: Adaptive vs Fixed\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%-22s %14s %14s %12s\n", "Metric", "Adaptive", "Fixed", "Better"))
	sb.WriteString(strings.Repeat("-", g.width))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-22s %14d %14d %12s\n",
		"Throughput (veh)",
		adaptive.Metrics.Throughput,
		fixed.Metrics.Throughput,
		verdict(float64(adaptive.Metrics.Throughput), float64(fixed.Metrics.Throughput), true)))

	sb.WriteString(fmt.Sprintf("%-22s %14.2f %14.2f %12s\n",
		"Avg Wait (s/veh)",
		adaptive.Metrics.AvgWaitTime,
		fixed.Metrics.AvgWaitTime,
		verdict(adaptive.Metrics.AvgWaitTime, fixed.Metrics.AvgWaitTime, false)))

	sb.WriteString(fmt.Sprintf("%-22s %14.2f %14.2f %12s\n",
		"Avg Queue (veh)",
		adaptive.Metrics.AvgQueueLength,
		fixed.Metrics.AvgQueueLength,
		verdict(adaptive.Metrics.AvgQueueLength, fixed.Metrics.AvgQueueLength, false)))

	sb.WriteString("\n")

	return sb.String()
}

// verdict names the winning strategy for one metric; equal values tie.
func verdict(adaptive, fixed float64, higherWins bool) string {
	if adaptive == fixed {
		return "tie"
	}
	adaptiveWins := adaptive > fixed
	if !higherWins {
		adaptiveWins = !adaptiveWins
	}
	if adaptiveWins {
		return "adaptive"
	}
	return "fixed"
}

// GenerateTimeline renders per-second events, truncated at limit.
func (g *Generator) GenerateTimeline(events []simulation.Event, limit int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Detailed Timeline")
	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf(" (showing first %d seconds)", limit))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	displayCount := len(events)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	for i := 0; i < displayCount; i++ {
		event := events[i]
		if event.ApproachID == simulation.AllRedApproachID {
			sb.WriteString(fmt.Sprintf("[t=%4d] R all-red\n", event.TimeSec))
		} else {
			sb.WriteString(fmt.Sprintf("[t=%4d] G approach %d passed %d\n",
				event.TimeSec, event.ApproachID, event.VehiclesPassed))
		}
	}

	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf("\n... and %d more seconds\n", len(events)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}
