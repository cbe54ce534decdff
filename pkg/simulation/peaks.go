package simulation

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aymanhs/greensplit/pkg/config"
)

// simEpoch anchors simulated second 0 to a fixed wall-clock instant so cron
// peak schedules expand deterministically. It is a Monday at midnight.
var simEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// peakWindow is a half-open interval of simulated seconds during which an
// approach's arrival rate is multiplied.
type peakWindow struct {
	start, end int
	multiplier float64
}

// buildPeakWindows expands each approach's cron peak schedules across the
// simulated horizon into second-indexed windows. Schedules that fail to
// parse are skipped with a warning; the run proceeds without them.
func buildPeakWindows(approaches []config.ApproachConfig, totalSimTime int) [][]peakWindow {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	simEnd := simEpoch.Add(time.Duration(totalSimTime) * time.Second)

	windows := make([][]peakWindow, len(approaches))
	for i, approach := range approaches {
		for _, peak := range approach.Peaks {
			schedule, err := parser.Parse(peak.CronSchedule)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to parse peak schedule for approach %s: %v\n", approach.Name, err)
				continue
			}

			currentTime := simEpoch.Add(-time.Second)
			for currentTime.Before(simEnd) {
				nextRun := schedule.Next(currentTime)
				if !nextRun.Before(simEnd) {
					break
				}

				start := int(nextRun.Sub(simEpoch) / time.Second)
				end := start + peak.Duration
				windows[i] = append(windows[i], peakWindow{
					start:      start,
					end:        end,
					multiplier: peak.Multiplier,
				})

				currentTime = nextRun
			}
		}
	}

	return windows
}

// multiplierAt returns the combined arrival-rate multiplier for a simulated
// second; overlapping windows compound.
func multiplierAt(windows []peakWindow, sec int) float64 {
	m := 1.0
	for _, w := range windows {
		if sec >= w.start && sec < w.end {
			m *= w.multiplier
		}
	}
	return m
}
