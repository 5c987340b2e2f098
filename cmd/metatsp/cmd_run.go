package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatsp/antcolony"
	"github.com/katalvlaran/metatsp/config"
	"github.com/katalvlaran/metatsp/genetic"
	"github.com/katalvlaran/metatsp/hybrid"
	"github.com/katalvlaran/metatsp/tsp"
)

// runOutput is the printed outcome of a run.
type runOutput struct {
	Algorithm string  `json:"algorithm"`
	Cities    int     `json:"cities"`
	Seed      int64   `json:"seed"`
	Restarts  int     `json:"restarts"`
	BestRun   int     `json:"best_run"`
	Distance  float64 `json:"distance"`
	Tour      []int   `json:"tour"`
	Elapsed   string  `json:"elapsed"`

	// LowerBound is the Held–Karp 1-tree bound; the optimum lies in
	// [LowerBound, Distance].
	LowerBound float64   `json:"lower_bound"`
	Optimal    *float64  `json:"optimal,omitempty"`
	Gap        *float64  `json:"gap,omitempty"`
	Stages     *stageOut `json:"stages,omitempty"`
}

type stageOut struct {
	Genetic   float64 `json:"ga"`
	AntColony float64 `json:"aco"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Solve a TSP instance",
		Long: `Solve a TSP instance with the genetic algorithm, the ant colony, or the
hybrid pipeline (genetic result primes the colony).

Cities come from --cities (YAML file) or are generated at random.
With --restarts N the chosen algorithm runs N times and the best tour wins.

Examples:
  metatsp run --algo hybrid --n 50 --seed 7
  metatsp run --algo ga --cities cities.yaml --restarts 5
  metatsp run --algo aco --n 12 --exact`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			parallelism, _ := cmd.Flags().GetInt("parallel")
			exact, _ := cmd.Flags().GetBool("exact")
			jsonOut, _ := cmd.Flags().GetBool("json")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cities, err := cfg.Instance()
			if err != nil {
				return err
			}

			out, err := openSinks(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer out.close(ctx)

			logger.Info("solving",
				"algorithm", cfg.Algorithm,
				"cities", len(cities),
				"seed", cfg.Seed,
				"restarts", cfg.Restarts,
			)

			start := time.Now()
			res, err := solve(ctx, cfg, cities, out.sink, parallelism)
			if err != nil {
				return err
			}
			res.Elapsed = time.Since(start).Round(time.Millisecond).String()
			res.Cities = len(cities)
			res.Seed = cfg.Seed
			res.Restarts = cfg.Restarts
			if err = attachBound(&res, cities); err != nil {
				return err
			}

			if exact {
				if err = attachOptimum(&res, cities); err != nil {
					return err
				}
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printRun(cmd.OutOrStdout(), res)

			return nil
		},
	}

	cmd.Flags().String("algo", config.AlgoHybrid, "Algorithm: ga, aco or hybrid")
	cmd.Flags().Int("restarts", 1, "Independent runs; the best is kept")
	cmd.Flags().Int("parallel", 1, "Runs executed concurrently when --restarts > 1 (0 = GOMAXPROCS)")
	cmd.Flags().String("cities", "", "YAML city file (overrides random generation)")
	cmd.Flags().Int("n", 0, "Number of random cities")
	cmd.Flags().Bool("polish", false, "Apply 2-opt to the hybrid result")
	cmd.Flags().Bool("exact", false, "Also compute the optimum with Held-Karp (small instances only)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while running")

	return cmd
}

// solve dispatches on cfg.Algorithm and repeats it cfg.Restarts times.
func solve(ctx context.Context, cfg config.Config, cities []tsp.City, sink tsp.ProgressSink, parallelism int) (runOutput, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	out := runOutput{Algorithm: cfg.Algorithm}

	var (
		best tsp.Result
		run  int
		err  error
	)
	switch cfg.Algorithm {
	case config.AlgoGenetic:
		best, run, err = hybrid.Repeat(ctx, cfg.Restarts, parallelism, cfg.Seed, func(_ int, seed int64) (tsp.Result, error) {
			opts := cfg.GeneticOptions(sink)
			opts.Seed = seed
			e, err := genetic.New(cities, opts)
			if err != nil {
				return tsp.Result{}, err
			}
			return e.Run()
		})

	case config.AlgoAntColony:
		best, run, err = hybrid.Repeat(ctx, cfg.Restarts, parallelism, cfg.Seed, func(_ int, seed int64) (tsp.Result, error) {
			opts := cfg.AntColonyOptions(sink)
			opts.Seed = seed
			e, err := antcolony.New(cities, opts)
			if err != nil {
				return tsp.Result{}, err
			}
			return e.Run()
		})

	case config.AlgoHybrid:
		var hr hybrid.Result
		hr, err = hybrid.RunBest(ctx, cities, cfg.HybridOptions(sink), cfg.Restarts, parallelism)
		best, run = hr.Result, hr.Run
		out.Stages = &stageOut{Genetic: hr.GeneticDistance, AntColony: hr.AntColonyDistance}

	default:
		return out, fmt.Errorf("%w: unknown algorithm %q", tsp.ErrInvalidInput, cfg.Algorithm)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return out, fmt.Errorf("run interrupted: %w", err)
		}
		return out, err
	}

	out.BestRun = run
	out.Distance = best.Distance
	out.Tour = best.Tour

	return out, nil
}

// attachBound adds the 1-tree lower bound, using the result as upper bound.
func attachBound(res *runOutput, cities []tsp.City) error {
	dm, err := tsp.NewDistanceMatrix(cities)
	if err != nil {
		return err
	}
	opts := tsp.DefaultBoundOptions()
	opts.UpperBound = res.Distance
	res.LowerBound = tsp.OneTreeBound(dm, opts)

	return nil
}

// attachOptimum adds the Held-Karp optimum and the relative gap.
func attachOptimum(res *runOutput, cities []tsp.City) error {
	dm, err := tsp.NewDistanceMatrix(cities)
	if err != nil {
		return err
	}
	opt, err := tsp.HeldKarp(dm)
	if err != nil {
		return fmt.Errorf("exact: %w", err)
	}
	gap := 0.0
	if opt.Distance > 0 {
		gap = (res.Distance - opt.Distance) / opt.Distance
	}
	res.Optimal = &opt.Distance
	res.Gap = &gap

	return nil
}

func printRun(w io.Writer, r runOutput) {
	fmt.Fprintf(w, "Algorithm: %s\n", r.Algorithm)
	fmt.Fprintf(w, "Cities:    %d\n", r.Cities)
	fmt.Fprintf(w, "Distance:  %.3f\n", r.Distance)
	if r.Stages != nil {
		fmt.Fprintf(w, "  GA:      %.3f\n", r.Stages.Genetic)
		fmt.Fprintf(w, "  ACO:     %.3f\n", r.Stages.AntColony)
	}
	fmt.Fprintf(w, "Bound:     %.3f\n", r.LowerBound)
	if r.Optimal != nil {
		fmt.Fprintf(w, "Optimal:   %.3f (gap %.2f%%)\n", *r.Optimal, 100*(*r.Gap))
	}
	if r.Restarts > 1 {
		fmt.Fprintf(w, "Best run:  %d of %d\n", r.BestRun+1, r.Restarts)
	}
	fmt.Fprintf(w, "Elapsed:   %s\n", r.Elapsed)
	fmt.Fprintf(w, "Tour:      %s\n", tsp.DebugString(r.Tour))
}
