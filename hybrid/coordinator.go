// Package hybrid chains the genetic and ant colony engines: the genetic
// result primes the colony's pheromone matrix, and the colony's result is the
// answer. There is no feedback from the colony back into the genetic stage.
//
// Besides the single pipeline (Run), the package offers RunBest, which
// repeats independent pipelines and keeps the shortest tour, and Incumbent,
// the best-so-far tracker it uses.
package hybrid

import (
	"time"

	"github.com/katalvlaran/metatsp/antcolony"
	"github.com/katalvlaran/metatsp/genetic"
	"github.com/katalvlaran/metatsp/tsp"
)

// Options configures a hybrid run. Genetic and AntColony are passed to the
// sub-engines as-is, except that:
//   - AntColony.HintTour is always replaced by the genetic result;
//   - a zero sub-engine Seed is derived from Seed when Seed is non-zero;
//   - a nil sub-engine Sink inherits Sink.
type Options struct {
	Genetic   genetic.Options
	AntColony antcolony.Options

	// Polish runs tsp.TwoOpt on the colony's tour before returning.
	Polish bool

	Seed int64
	Sink tsp.ProgressSink
}

// DefaultOptions combines the sub-engine defaults; Polish is off.
func DefaultOptions() Options {
	return Options{
		Genetic:   genetic.DefaultOptions(),
		AntColony: antcolony.DefaultOptions(),
	}
}

// Result is the outcome of one pipeline.
type Result struct {
	tsp.Result

	// GeneticDistance is the genetic stage's best length (the hint's length).
	GeneticDistance float64

	// AntColonyDistance is the colony's best length before any polish.
	AntColonyDistance float64

	// Elapsed is the wall-clock time of the whole pipeline.
	Elapsed time.Duration

	// Run is the index of the repetition that produced this result
	// (always 0 from Run).
	Run int
}

// Run executes the genetic engine to completion, builds an ant colony primed
// with its tour, runs it to completion and returns the colony's result.
// The total duration is reported to the sink under tsp.LabelHybrid.
//
// Errors: whatever the sub-engines return from New or Run.
func Run(cities []tsp.City, opts Options) (Result, error) {
	start := time.Now()
	gaOpts, acoOpts := split(opts)

	ga, err := genetic.New(cities, gaOpts)
	if err != nil {
		return Result{}, err
	}
	gaRes, err := ga.Run()
	if err != nil {
		return Result{}, err
	}

	acoOpts.HintTour = gaRes.Tour
	aco, err := antcolony.New(cities, acoOpts)
	if err != nil {
		return Result{}, err
	}
	acoRes, err := aco.Run()
	if err != nil {
		return Result{}, err
	}

	out := Result{
		Result:            acoRes,
		GeneticDistance:   gaRes.Distance,
		AntColonyDistance: acoRes.Distance,
	}
	if opts.Polish {
		if out.Result, err = polish(cities, acoRes); err != nil {
			return Result{}, err
		}
	}
	out.Elapsed = time.Since(start)

	tsp.Emit(opts.Sink, tsp.LabelHybrid, out.Distance, out.Elapsed, map[string]any{
		"ga_distance":  out.GeneticDistance,
		"aco_distance": out.AntColonyDistance,
		"polished":     opts.Polish,
	})

	return out, nil
}

// split derives the sub-engine options from opts.
func split(opts Options) (genetic.Options, antcolony.Options) {
	var (
		g = opts.Genetic
		a = opts.AntColony
	)
	if opts.Seed != 0 {
		rng := tsp.NewRNG(opts.Seed)
		if g.Seed == 0 {
			g.Seed = rng.Int63() | 1
		}
		if a.Seed == 0 {
			a.Seed = rng.Int63() | 1
		}
	}
	if g.Sink == nil {
		g.Sink = opts.Sink
	}
	if a.Sink == nil {
		a.Sink = opts.Sink
	}
	a.HintTour = nil

	return g, a
}

// polish applies 2-opt and keeps whichever tour is shorter.
func polish(cities []tsp.City, in tsp.Result) (tsp.Result, error) {
	dm, err := tsp.NewDistanceMatrix(cities)
	if err != nil {
		return tsp.Result{}, err
	}
	t, d, err := tsp.TwoOpt(dm, in.Tour, tsp.DefaultTwoOptOptions())
	if err != nil {
		return tsp.Result{}, err
	}
	if d < in.Distance {
		return tsp.Result{Tour: t, Distance: d}, nil
	}

	return in, nil
}
