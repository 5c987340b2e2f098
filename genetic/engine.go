// Package genetic - the generational engine and its stepwise iterator.
//
// One generation:
//  1. Sort the current population by fitness (descending).
//  2. Copy the ElitismCount best individuals unchanged.
//  3. Build PopulationSize−ElitismCount children in parallel from the frozen
//     population: two tournament parents → order crossover → swap mutation.
//  4. Replace the population with elites ∪ children (after the barrier).
//  5. Update the best-ever individual.
//
// Concurrency:
//   - Step/Run are safe for concurrent callers; steps are serialized.
//   - During step 3 workers only read the population snapshot; each child has
//     its own RNG stream derived by the controller, so a fixed Seed gives the
//     same result for any Workers value.
package genetic

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/katalvlaran/metatsp/parallel"
	"github.com/katalvlaran/metatsp/tsp"
)

// anchor is the city pinned at position 0 of every tour.
const anchor = 0

// Engine is a genetic TSP solver driven one generation at a time.
type Engine struct {
	mu sync.Mutex

	dm   *tsp.DistanceMatrix
	opts Options
	rng  *rand.Rand

	population []individual
	best       individual
	generation int // generations produced so far
	state      State
}

// New validates cities and opts and returns an engine in the Unstarted state.
// The initial population is created on the first Step.
//
// Errors: tsp.ErrInvalidInput (fewer than two cities, bad coordinates) or one
// of the option sentinels from types.go.
func New(cities []tsp.City, opts Options) (*Engine, error) {
	opts = normalize(opts)
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	dm, err := tsp.NewDistanceMatrix(cities)
	if err != nil {
		return nil, err
	}

	return &Engine{
		dm:   dm,
		opts: opts,
		rng:  tsp.NewRNG(opts.Seed),
		best: individual{length: math.Inf(1)},
	}, nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Generation returns the number of generations produced so far.
func (e *Engine) Generation() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.generation
}

// Best returns the best-ever tour and its length, or false before the first step.
func (e *Engine) Best() (tsp.Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.best.tour == nil {
		return tsp.Result{}, false
	}

	return tsp.Result{Tour: e.best.tour.Clone(), Distance: e.best.length}, true
}

// Step produces the next generation. After MaxGenerations successful calls it
// returns ErrExhausted on every further call.
//
// The ProgressSink, if any, is invoked after the engine lock is released.
func (e *Engine) Step() (Generation, error) {
	gen, err := e.step()
	if err != nil {
		return Generation{}, err
	}
	tsp.Emit(e.opts.Sink, tsp.LabelGenetic, gen.BestDistance, gen.Elapsed, map[string]any{
		"generation":   gen.Index,
		"current_best": gen.CurrentBestDistance,
		"population":   e.opts.PopulationSize,
	})

	return gen, nil
}

// Run steps the engine until it is exhausted and returns the best-ever tour.
// A partially stepped engine is driven to completion. Calling Run on an
// engine that is already exhausted returns ErrExhausted.
func (e *Engine) Run() (tsp.Result, error) {
	var (
		stepped bool
		err     error
	)
	for {
		if _, err = e.Step(); err != nil {
			break
		}
		stepped = true
	}
	if !errors.Is(err, ErrExhausted) {
		return tsp.Result{}, err
	}
	if !stepped {
		return tsp.Result{}, ErrExhausted
	}

	res, _ := e.Best()

	return res, nil
}

// step performs one generation under the engine lock.
func (e *Engine) step() (Generation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Exhausted {
		return Generation{}, ErrExhausted
	}

	start := time.Now()
	if e.state == Unstarted {
		e.initPopulation()
		e.state = Running
	}
	e.evolve()

	current := e.population[0]

	var i int
	for i = 1; i < len(e.population); i++ {
		if fitter(e.population[i], current) {
			current = e.population[i]
		}
	}
	if e.best.tour == nil || fitter(current, e.best) {
		e.best = individual{tour: current.tour.Clone(), length: current.length}
	}

	gen := Generation{
		Index:               e.generation,
		Best:                e.best.tour.Clone(),
		BestDistance:        e.best.length,
		CurrentBestDistance: current.length,
		Elapsed:             time.Since(start),
	}

	e.generation++
	if e.generation >= e.opts.MaxGenerations {
		e.state = Exhausted
		e.population = nil
	}

	return gen, nil
}

// initPopulation creates the random anchored parents of generation 0. Its
// best member also seeds the best-ever record.
//
// Complexity: O(P·n).
func (e *Engine) initPopulation() {
	var (
		n = e.dm.Len()
		p = e.opts.PopulationSize
		i int
		t tsp.Tour
	)
	e.population = make([]individual, p)
	for i = 0; i < p; i++ {
		t = tsp.RandomAnchoredTour(n, anchor, e.rng)
		e.population[i] = individual{tour: t, length: e.dm.TourLength(t)}
		if e.best.tour == nil || fitter(e.population[i], e.best) {
			e.best = individual{tour: t.Clone(), length: e.population[i].length}
		}
	}
}

// evolve replaces the population with the next generation.
//
// Complexity: O(P log P) sort + O(P·n) children, the latter split over workers.
func (e *Engine) evolve() {
	// Stable sort keeps generation order deterministic among equal lengths.
	slices.SortStableFunc(e.population, func(a, b individual) int {
		fa, fb := fitness(a.length), fitness(b.length)
		switch {
		case fa > fb:
			return -1
		case fa < fb:
			return 1
		default:
			return 0
		}
	})

	var (
		elite    = e.opts.ElitismCount
		children = e.opts.PopulationSize - elite
		parents  = e.population
		seeds    = tsp.DeriveSeeds(e.rng, children)
		next     = make([]individual, e.opts.PopulationSize)
		k        = e.opts.TournamentSize
		rate     = e.opts.MutationRate
	)
	copy(next, parents[:elite])

	born := next[elite:]
	parallel.For(children, e.opts.Workers, func(i int) {
		r := rand.New(rand.NewSource(seeds[i]))
		a := tournament(parents, k, r)
		b := tournament(parents, k, r)
		child := orderCrossover(a.tour, b.tour, r)
		mutate(child, rate, r)
		born[i] = individual{tour: child, length: e.dm.TourLength(child)}
	})

	e.population = next
}
