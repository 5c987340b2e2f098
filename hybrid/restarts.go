package hybrid

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/metatsp/tsp"
)

// ErrNoRuns indicates a repeat request for fewer than one run.
var ErrNoRuns = fmt.Errorf("%w: hybrid: runs must be at least 1", tsp.ErrInvalidInput)

// Incumbent tracks the best solution offered so far across runs.
// Ties on distance go to the lower run index, so the outcome does not depend
// on completion order. Safe for concurrent use.
type Incumbent struct {
	mu   sync.Mutex
	best tsp.Result
	run  int
	set  bool
}

// Offer records the solution of run `run` if it beats the incumbent, and
// reports whether it was kept. The tour is copied.
func (inc *Incumbent) Offer(run int, tour tsp.Tour, distance float64) bool {
	inc.mu.Lock()
	defer inc.mu.Unlock()

	if inc.set {
		if distance > inc.best.Distance {
			return false
		}
		if distance == inc.best.Distance && run >= inc.run {
			return false
		}
	}
	inc.best = tsp.Result{Tour: tour.Clone(), Distance: distance}
	inc.run = run
	inc.set = true

	return true
}

// Best returns a copy of the best solution and the run that produced it, or
// false if nothing was offered.
func (inc *Incumbent) Best() (tsp.Result, int, bool) {
	inc.mu.Lock()
	defer inc.mu.Unlock()

	if !inc.set {
		return tsp.Result{}, -1, false
	}

	return tsp.Result{Tour: inc.best.Tour.Clone(), Distance: inc.best.Distance}, inc.run, true
}

// Trial is one independent solver execution.
type Trial func(run int, seed int64) (tsp.Result, error)

// Repeat executes `runs` trials, at most `parallelism` at a time (≤ 0 ⇒ one
// at a time), and returns the best result with the index of its run.
//
// Trial i receives seed baseSeed+i when baseSeed is non-zero and 0 otherwise,
// so a seeded Repeat is reproducible. A negative base skips 0 on the way up,
// since 0 would mean a time-derived seed. The context is checked before each
// trial starts; cancellation or the first trial error stops new trials and
// is returned.
func Repeat(ctx context.Context, runs, parallelism int, baseSeed int64, trial Trial) (tsp.Result, int, error) {
	if runs < 1 {
		return tsp.Result{}, -1, ErrNoRuns
	}
	if parallelism <= 0 {
		parallelism = 1
	}

	var inc Incumbent
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	var i int
	for i = 0; i < runs; i++ {
		run := i
		seed := trialSeed(baseSeed, run)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := trial(run, seed)
			if err != nil {
				return err
			}
			inc.Offer(run, res.Tour, res.Distance)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return tsp.Result{}, -1, err
	}
	best, run, _ := inc.Best()

	return best, run, nil
}

// trialSeed maps run to a distinct non-zero seed when base is non-zero.
func trialSeed(base int64, run int) int64 {
	if base == 0 {
		return 0
	}
	seed := base + int64(run)
	if base < 0 && seed >= 0 {
		seed++
	}

	return seed
}

// RunBest repeats the hybrid pipeline and returns the best run's full result.
// When opts.Seed is non-zero, run i uses opts.Seed+i and derives its
// sub-engine seeds from it (explicit sub-engine seeds are ignored, otherwise
// every run would repeat the same search).
func RunBest(ctx context.Context, cities []tsp.City, opts Options, runs, parallelism int) (Result, error) {
	var (
		mu      sync.Mutex
		results = make(map[int]Result, runs)
	)
	_, best, err := Repeat(ctx, runs, parallelism, opts.Seed, func(run int, seed int64) (tsp.Result, error) {
		o := opts
		o.Seed = seed
		if seed != 0 {
			o.Genetic.Seed = 0
			o.AntColony.Seed = 0
		}
		res, err := Run(cities, o)
		if err != nil {
			return tsp.Result{}, err
		}
		res.Run = run
		mu.Lock()
		results[run] = res
		mu.Unlock()

		return res.Result, nil
	})
	if err != nil {
		return Result{}, err
	}

	return results[best], nil
}
