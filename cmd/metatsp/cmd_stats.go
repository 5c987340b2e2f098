package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatsp/progress"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Inspect or reset recorded statistics",
	}
	cmd.AddCommand(newStatsShowCmd(), newStatsResetCmd())

	return cmd
}

func newStatsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Summarize recorded distances per algorithm",
		Long: `Summarize the distances recorded per algorithm (count, min, max, mean,
standard deviation, median) from the statistics file and, if configured,
the statistics database.

Examples:
  metatsp stats show --stats-file stats.json
  metatsp stats show --stats-db runs.db --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			file := cfg.Stats.File
			if file == "" {
				file = progress.DefaultStatsFile
			}
			report := map[string]map[string]progress.Summary{
				"file": progress.SummarizeAll(progress.OpenStore(file, logger).All()),
			}

			if cfg.Stats.DB != "" {
				ctx := cmd.Context()
				db, err := progress.OpenSQLStore(ctx, cfg.Stats.DB, logger)
				if err != nil {
					return err
				}
				defer db.Close()
				if report["db"], err = summarizeDB(ctx, db); err != nil {
					return err
				}
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			for _, source := range slices.Sorted(maps.Keys(report)) {
				printSummaries(cmd.OutOrStdout(), source, report[source])
			}

			return nil
		},
	}
}

func summarizeDB(ctx context.Context, db *progress.SQLStore) (map[string]progress.Summary, error) {
	rows, err := db.Records(ctx, "")
	if err != nil {
		return nil, err
	}
	byLabel := make(map[string][]float64)
	for _, r := range rows {
		byLabel[r.Algorithm] = append(byLabel[r.Algorithm], r.Distance)
	}
	out := make(map[string]progress.Summary, len(byLabel))
	for label, d := range byLabel {
		out[label] = progress.Summarize(d)
	}

	return out, nil
}

func printSummaries(w io.Writer, source string, sums map[string]progress.Summary) {
	fmt.Fprintf(w, "[%s]\n", source)
	fmt.Fprintf(w, "%-8s %6s %12s %12s %12s %12s %12s\n", "algo", "count", "min", "max", "mean", "stddev", "median")
	for _, label := range slices.Sorted(maps.Keys(sums)) {
		s := sums[label]
		if s.Count == 0 {
			fmt.Fprintf(w, "%-8s %6d\n", label, 0)
			continue
		}
		fmt.Fprintf(w, "%-8s %6d %12.3f %12.3f %12.3f %12.3f %12.3f\n",
			label, s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.Median)
	}
}

func newStatsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the statistics file and database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			file := cfg.Stats.File
			if file == "" {
				file = progress.DefaultStatsFile
			}
			if err = progress.OpenStore(file, logger).Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", file)

			if cfg.Stats.DB != "" {
				db, err := progress.OpenSQLStore(cmd.Context(), cfg.Stats.DB, logger)
				if err != nil {
					return err
				}
				defer db.Close()
				if err = db.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", cfg.Stats.DB)
			}

			return nil
		},
	}
}
