package config

// Config represents the entire configuration for the intersection simulator
type Config struct {
	Timing     Timing           `yaml:"timing"`
	Simulation Simulation       `yaml:"simulation"`
	Approaches []ApproachConfig `yaml:"approaches"`
}

// Timing holds the signal timing parameters, all in whole seconds
type Timing struct {
	CycleTime int `yaml:"cycleTime"`
	AllRed    int `yaml:"allRed"`
	MinGreen  int `yaml:"minGreen"`
	MaxGreen  int `yaml:"maxGreen"`
}

// Simulation holds the run parameters
type Simulation struct {
	Duration int      `yaml:"duration"` // simulated seconds
	Strategy Strategy `yaml:"strategy"`
	Seed     int64    `yaml:"seed,omitempty"`

	// When set, per-second events stream to this file as CSV instead of
	// being buffered in memory.
	LogFile string `yaml:"logFile,omitempty"`
}

// ApproachConfig describes one directional inflow to the intersection
type ApproachConfig struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Lanes       int     `yaml:"lanes"`
	ArrivalRate float64 `yaml:"arrivalRate"` // vehicles/second
	ServiceRate float64 `yaml:"serviceRate"` // vehicles/second while green

	// Optional peak demand windows (e.g. rush hour) that multiply the
	// arrival rate while active.
	Peaks []PeakConfig `yaml:"peaks,omitempty"`
}

// PeakConfig describes a recurring demand peak for an approach
type PeakConfig struct {
	CronSchedule string  `yaml:"cronSchedule"`
	Duration     int     `yaml:"duration"` // seconds
	Multiplier   float64 `yaml:"multiplier"`
}

// Strategy selects the green-time allocation policy
type Strategy string

const (
	StrategyFixed    Strategy = "fixed"
	StrategyAdaptive Strategy = "adaptive"
)

// AvailableGreen returns the green budget of one cycle, cycleTime minus the
// all-red clearance interval.
func (t Timing) AvailableGreen() int {
	return t.CycleTime - t.AllRed
}
