package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "metatsp",
		Short: "Metaheuristic travelling salesman solver",
		Long: `metatsp finds short closed tours through a set of 2-D cities using a
genetic algorithm, an ant colony, or a hybrid that seeds the colony's
pheromone trails with the genetic result.

Runs can be recorded to a JSON statistics file, an SQLite database and
Prometheus metrics.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed (0 = non-reproducible)")
	rootCmd.PersistentFlags().Int("workers", 0, "Parallel workers per engine (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("stats-file", "", "JSON statistics file")
	rootCmd.PersistentFlags().String("stats-db", "", "SQLite statistics database")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newCitiesCmd(),
		newStatsCmd(),
	)

	return rootCmd
}
