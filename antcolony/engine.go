// Package antcolony - the iteration loop.
//
// One iteration:
//  1. Construction: Ants tours built in parallel from city 0; workers only
//     read the distance and pheromone matrices.
//  2. Barrier: every ant has finished.
//  3. Evaporation: τ ← max((1−ρ)·τ, floor) on every entry.
//  4. Deposit: +1/L on every edge of every ant tour, closing edge included.
//  5. Best-ever update, then telemetry.
//
// The next iteration's construction starts only after step 4 completes.
package antcolony

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/katalvlaran/metatsp/parallel"
	"github.com/katalvlaran/metatsp/tsp"
)

// Engine is an ant colony TSP solver. An engine runs once.
type Engine struct {
	mu sync.Mutex

	dm   *tsp.DistanceMatrix
	ph   *PheromoneMatrix
	opts Options
	rng  *rand.Rand

	best     tsp.Tour
	bestLen  float64
	ran      bool
	hintUsed bool
}

// New validates cities and opts, builds the pheromone matrix at the uniform
// initial value and, if opts.HintTour is set, deposits
// HintDepositFactor / L(hint) on each hint edge.
//
// Errors: tsp.ErrInvalidInput (fewer than two cities, bad coordinates), one of
// the option sentinels from types.go, or ErrHintTour.
func New(cities []tsp.City, opts Options) (*Engine, error) {
	opts = normalize(opts)
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	dm, err := tsp.NewDistanceMatrix(cities)
	if err != nil {
		return nil, err
	}
	ph, err := NewPheromoneMatrix(dm.Len(), opts.InitialPheromone, opts.MinPheromone)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		dm:      dm,
		ph:      ph,
		opts:    opts,
		rng:     tsp.NewRNG(opts.Seed),
		bestLen: math.Inf(1),
	}
	if opts.HintTour != nil {
		if err = e.prime(opts.HintTour); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// prime biases the hint's edges without excluding any other edge.
// A closed hint (n+1 entries, start repeated) is accepted.
func (e *Engine) prime(hint tsp.Tour) error {
	if len(hint) == e.dm.Len()+1 {
		open, err := tsp.FromClosed(hint)
		if err != nil {
			return ErrHintTour
		}
		hint = open
	}
	if err := tsp.ValidateTour(hint, e.dm.Len()); err != nil {
		return ErrHintTour
	}
	e.ph.Deposit(hint, cappedInverse(HintDepositFactor, e.dm.TourLength(hint)))
	e.hintUsed = true

	return nil
}

// Pheromones returns a snapshot of the current trail matrix.
func (e *Engine) Pheromones() *PheromoneMatrix {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ph.Clone()
}

// Best returns the best-ever tour, or false before the first iteration.
func (e *Engine) Best() (tsp.Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.best == nil {
		return tsp.Result{}, false
	}

	return tsp.Result{Tour: e.best.Clone(), Distance: e.bestLen}, true
}

// Run executes all iterations and returns the best tour found.
//
// Errors: ErrAlreadyRun on a second call.
func (e *Engine) Run() (tsp.Result, error) {
	e.mu.Lock()
	if e.ran {
		e.mu.Unlock()
		return tsp.Result{}, ErrAlreadyRun
	}
	e.ran = true
	e.mu.Unlock()

	var (
		it    int
		start time.Time
		rec   Iteration
	)
	for it = 0; it < e.opts.Iterations; it++ {
		start = time.Now()
		rec = e.iterate(it)
		tsp.Emit(e.opts.Sink, tsp.LabelAntColony, rec.BestDistance, time.Since(start), map[string]any{
			"iteration":      rec.Index,
			"iteration_best": rec.IterationBestDistance,
			"min_trail":      rec.MinTrail,
			"hinted":         e.hintUsed,
		})
	}

	res, _ := e.Best()

	return res, nil
}

// iterate runs one construction phase, then the update phase.
func (e *Engine) iterate(index int) Iteration {
	var (
		ants    = e.opts.Ants
		seeds   = tsp.DeriveSeeds(e.rng, ants)
		tours   = make([]tsp.Tour, ants)
		lengths = make([]float64, ants)
		alpha   = e.opts.Alpha
		beta    = e.opts.Beta
		ph      = e.ph
	)
	parallel.For(ants, e.opts.Workers, func(i int) {
		r := rand.New(rand.NewSource(seeds[i]))
		tours[i] = construct(e.dm, ph, alpha, beta, r)
		lengths[i] = e.dm.TourLength(tours[i])
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	e.ph.Evaporate(e.opts.EvaporationRate)

	var (
		i        int
		iterBest = 0
	)
	for i = 0; i < ants; i++ {
		e.ph.Deposit(tours[i], depositAmount(lengths[i]))
		if lengths[i] < lengths[iterBest] {
			iterBest = i
		}
	}
	if e.best == nil || lengths[iterBest] < e.bestLen {
		e.best = tours[iterBest]
		e.bestLen = lengths[iterBest]
	}

	return Iteration{
		Index:                 index,
		BestDistance:          e.bestLen,
		IterationBestDistance: lengths[iterBest],
		MinTrail:              e.ph.Min(),
	}
}
