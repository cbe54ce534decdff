package intersection

// MaxLanes bounds the lane count of a single approach.
const MaxLanes = 6

// Approach is one directional traffic inflow to the intersection, together
// with the live counters the simulation engine mutates during a run.
type Approach struct {
	ID          int
	Name        string
	Lanes       int
	ArrivalRate float64 // vehicles/second
	ServiceRate float64 // vehicles/second while green

	// Run counters, zeroed by ResetCounters before every run.
	Queue          int   // vehicles currently waiting, never negative
	CumulativeWait int64 // vehicle-seconds of waiting accrued so far
	TotalArrived   int
	TotalServed    int
	CumQueueLength int64 // sum of post-arrival queue lengths, for time-averaging
}

// NewApproach builds an approach with the lane count clamped to
// [1, MaxLanes]. Out-of-range lane counts are tolerated, not rejected.
func NewApproach(id int, name string, lanes int, arrivalRate, serviceRate float64) *Approach {
	a := &Approach{
		ID:   id,
		Name: name,
	}
	a.SetLanes(lanes)
	a.SetArrivalRate(arrivalRate)
	a.SetServiceRate(serviceRate)
	return a
}

// SetLanes clamps the lane count to [1, MaxLanes] silently.
func (a *Approach) SetLanes(lanes int) {
	if lanes < 1 {
		lanes = 1
	}
	if lanes > MaxLanes {
		lanes = MaxLanes
	}
	a.Lanes = lanes
}

// SetArrivalRate updates the arrival rate. Negative values are ignored.
func (a *Approach) SetArrivalRate(rate float64) {
	if rate < 0 {
		return
	}
	a.ArrivalRate = rate
}

// SetServiceRate updates the service rate. Negative values are ignored.
func (a *Approach) SetServiceRate(rate float64) {
	if rate < 0 {
		return
	}
	a.ServiceRate = rate
}

// ResetCounters zeroes all run counters so consecutive runs do not leak
// state into each other.
func (a *Approach) ResetCounters() {
	a.Queue = 0
	a.CumulativeWait = 0
	a.TotalArrived = 0
	a.TotalServed = 0
	a.CumQueueLength = 0
}

// Snapshot is a read-only copy of an approach's state.
type Snapshot struct {
	ID             int
	Name           string
	Lanes          int
	ArrivalRate    float64
	ServiceRate    float64
	Queue          int
	CumulativeWait int64
	TotalArrived   int
	TotalServed    int
	CumQueueLength int64
}

func (a *Approach) snapshot() Snapshot {
	return Snapshot{
		ID:             a.ID,
		Name:           a.Name,
		Lanes:          a.Lanes,
		ArrivalRate:    a.ArrivalRate,
		ServiceRate:    a.ServiceRate,
		Queue:          a.Queue,
		CumulativeWait: a.CumulativeWait,
		TotalArrived:   a.TotalArrived,
		TotalServed:    a.TotalServed,
		CumQueueLength: a.CumQueueLength,
	}
}
