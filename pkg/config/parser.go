package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads and parses the configuration file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration. An empty approach list is
// allowed: a run over zero approaches yields zero-valued metrics rather than
// an error.
func validateConfig(config *Config) error {
	if config.Timing.CycleTime <= 0 {
		return fmt.Errorf("timing: cycleTime must be greater than 0")
	}

	if config.Timing.AllRed < 0 {
		return fmt.Errorf("timing: allRed must not be negative")
	}

	if config.Timing.AllRed >= config.Timing.CycleTime {
		return fmt.Errorf("timing: allRed must be shorter than cycleTime")
	}

	if config.Timing.MinGreen < 0 || config.Timing.MaxGreen < 0 {
		return fmt.Errorf("timing: minGreen and maxGreen must not be negative")
	}

	if config.Timing.MinGreen > config.Timing.MaxGreen {
		return fmt.Errorf("timing: minGreen must not exceed maxGreen")
	}

	if config.Simulation.Duration <= 0 {
		return fmt.Errorf("simulation: duration must be greater than 0")
	}

	if s := config.Simulation.Strategy; s != StrategyFixed && s != StrategyAdaptive {
		return fmt.Errorf("simulation: strategy must be either 'fixed' or 'adaptive'")
	}

	seen := make(map[int]struct{}, len(config.Approaches))
	for i, approach := range config.Approaches {
		if approach.ID <= 0 {
			return fmt.Errorf("approach %d: id must be greater than 0", i)
		}

		if _, dup := seen[approach.ID]; dup {
			return fmt.Errorf("approach %d: duplicate id %d", i, approach.ID)
		}
		seen[approach.ID] = struct{}{}

		if approach.Name == "" {
			return fmt.Errorf("approach %d: name is required", i)
		}

		if approach.ArrivalRate < 0 {
			return fmt.Errorf("approach %s: arrivalRate must not be negative", approach.Name)
		}

		if approach.ServiceRate < 0 {
			return fmt.Errorf("approach %s: serviceRate must not be negative", approach.Name)
		}

		for j, peak := range approach.Peaks {
			if peak.CronSchedule == "" {
				return fmt.Errorf("approach %s: peak %d: cronSchedule is required", approach.Name, j)
			}

			if peak.Duration <= 0 {
				return fmt.Errorf("approach %s: peak %d: duration must be greater than 0", approach.Name, j)
			}

			if peak.Multiplier < 0 {
				return fmt.Errorf("approach %s: peak %d: multiplier must not be negative", approach.Name, j)
			}
		}
	}

	return nil
}
