package simulation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// AllRedApproachID marks a second during which no approach held the green.
const AllRedApproachID = -1

// Event records what happened during one simulated second. Events are
// append-only and never feed back into simulation logic.
type Event struct {
	TimeSec        int
	ApproachID     int // AllRedApproachID during all-red seconds
	VehiclesPassed int
}

// TimePoint captures the aggregate state after one simulated second, used
// for charting.
type TimePoint struct {
	TimeSec        int
	TotalQueue     int
	ActiveApproach int // approach id, or AllRedApproachID
}

// EventSink consumes per-second events. A failing sink is demoted to
// NoopSink by the engine; it never aborts a run.
type EventSink interface {
	Record(Event) error
	Close() error
}

// NoopSink discards every event.
type NoopSink struct{}

// Record discards the event.
func (NoopSink) Record(Event) error { return nil }

// Close is a no-op.
func (NoopSink) Close() error { return nil }

// BufferedSink accumulates events in memory, for inspection and later
// export when file streaming is off.
type BufferedSink struct {
	events []Event
}

// NewBufferedSink creates an empty buffered sink.
func NewBufferedSink() *BufferedSink {
	return &BufferedSink{}
}

// Record appends the event to the buffer.
func (s *BufferedSink) Record(e Event) error {
	s.events = append(s.events, e)
	return nil
}

// Close is a no-op.
func (s *BufferedSink) Close() error { return nil }

// Events returns all recorded events in time order.
func (s *BufferedSink) Events() []Event {
	return s.events
}

var csvHeader = []string{"time_sec", "approach_id", "vehicles_passed"}

// StreamSink writes events straight to a CSV stream, one line per second,
// without buffering them in memory.
type StreamSink struct {
	w      *csv.Writer
	closer io.Closer
}

// NewStreamSink wraps a writer with a CSV event stream and emits the
// header row.
func NewStreamSink(w io.Writer) (*StreamSink, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write event log header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to write event log header: %w", err)
	}
	return &StreamSink{w: cw}, nil
}

// NewFileSink creates (or truncates) the named file and streams events to
// it.
func NewFileSink(path string) (*StreamSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log file: %w", err)
	}
	sink, err := NewStreamSink(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	sink.closer = f
	return sink, nil
}

// Record writes one CSV row and flushes it, keeping the stream
// line-buffered.
func (s *StreamSink) Record(e Event) error {
	if err := s.w.Write(eventRecord(e)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Close flushes the stream and closes the underlying file, if any.
func (s *StreamSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// WriteCSV exports buffered events in the same format the stream sink
// produces: a header row, then one row per simulated second.
func WriteCSV(w io.Writer, events []Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write event header: %w", err)
	}
	for _, e := range events {
		if err := cw.Write(eventRecord(e)); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write events: %w", err)
	}
	return nil
}

func eventRecord(e Event) []string {
	return []string{
		strconv.Itoa(e.TimeSec),
		strconv.Itoa(e.ApproachID),
		strconv.Itoa(e.VehiclesPassed),
	}
}
