package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aymanhs/greensplit/pkg/config"
	"github.com/aymanhs/greensplit/pkg/intersection"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "greensplit",
	Short: "Signalized Intersection Simulator",
	Long: `A CLI tool that simulates a signalized traffic intersection second by second.

It reads a configuration file describing the approaches (arrival and service
rates) and the signal timing, simulates vehicle arrivals, queuing and service
under a fixed-time or queue-proportional adaptive signal plan, and reports
throughput, average wait and average queue length.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to configuration file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}

// buildRegistry materializes the configured approaches. Lane counts are
// clamped by the approach constructor rather than rejected.
func buildRegistry(cfg *config.Config) (*intersection.Registry, error) {
	registry := intersection.NewRegistry()
	for _, ac := range cfg.Approaches {
		approach := intersection.NewApproach(ac.ID, ac.Name, ac.Lanes, ac.ArrivalRate, ac.ServiceRate)
		if err := registry.Add(approach); err != nil {
			return nil, fmt.Errorf("failed to register approach %q: %w", ac.Name, err)
		}
	}
	return registry, nil
}
