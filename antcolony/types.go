// Package antcolony defines the configuration and errors of the ant colony
// TSP engine.
//
// Options:
//
//	– Ants:             tours constructed per iteration (≥ 1).
//	– Iterations:       construction/update rounds (≥ 1).
//	– Alpha:            trail exponent (≥ 0).
//	– Beta:             visibility (1/distance) exponent (≥ 0).
//	– EvaporationRate:  ρ in (0,1); trails decay by (1−ρ) each iteration.
//	– HintTour:         optional tour (open or closed form) whose edges are primed
//	                    before iteration 0.
//	– InitialPheromone: uniform starting trail (0 ⇒ DefaultInitialPheromone).
//	– MinPheromone:     trail floor, strictly positive (0 ⇒ DefaultMinPheromone).
//	– Seed:             0 ⇒ non-reproducible; otherwise deterministic.
//	– Workers:          construction goroutines (≤ 0 ⇒ GOMAXPROCS).
//	– Sink:             optional telemetry receiver.
//
// Errors (sentinel; all but ErrAlreadyRun wrap tsp.ErrInvalidInput):
//
//	– ErrAnts, ErrIterations, ErrAlpha, ErrBeta, ErrEvaporationRate,
//	  ErrPheromone, ErrHintTour.
//	– ErrAlreadyRun: Run was called twice on the same engine.
package antcolony

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/metatsp/tsp"
)

// Sentinel errors returned by the ant colony engine.
var (
	// ErrAnts indicates Ants < 1.
	ErrAnts = fmt.Errorf("%w: antcolony: ant count must be at least 1", tsp.ErrInvalidInput)

	// ErrIterations indicates Iterations < 1.
	ErrIterations = fmt.Errorf("%w: antcolony: iterations must be at least 1", tsp.ErrInvalidInput)

	// ErrAlpha indicates a negative or non-finite Alpha.
	ErrAlpha = fmt.Errorf("%w: antcolony: alpha must be a finite value ≥ 0", tsp.ErrInvalidInput)

	// ErrBeta indicates a negative or non-finite Beta.
	ErrBeta = fmt.Errorf("%w: antcolony: beta must be a finite value ≥ 0", tsp.ErrInvalidInput)

	// ErrEvaporationRate indicates an EvaporationRate outside (0,1).
	ErrEvaporationRate = fmt.Errorf("%w: antcolony: evaporation rate must be in (0,1)", tsp.ErrInvalidInput)

	// ErrPheromone indicates a non-positive floor or initial trail, or an
	// initial trail below the floor.
	ErrPheromone = fmt.Errorf("%w: antcolony: pheromone bounds must satisfy 0 < min ≤ initial", tsp.ErrInvalidInput)

	// ErrHintTour indicates a HintTour that is not a permutation of the cities.
	ErrHintTour = fmt.Errorf("%w: antcolony: hint tour is not a permutation of the cities", tsp.ErrInvalidInput)

	// ErrAlreadyRun indicates a second Run on the same engine.
	ErrAlreadyRun = errors.New("antcolony: engine already run")
)

const (
	// DefaultInitialPheromone is the uniform starting trail.
	DefaultInitialPheromone = 0.1

	// DefaultMinPheromone is the trail floor applied after evaporation.
	DefaultMinPheromone = 1e-6

	// HintDepositFactor scales the hint deposit: HintDepositFactor / L(hint).
	HintDepositFactor = 5.0

	// MaxDeposit caps a single deposit; it replaces 1/L for zero-length tours.
	MaxDeposit = 1e6

	// maxHeuristic replaces 1/d for zero-length edges.
	maxHeuristic = 1e12

	// minWeightSum is the roulette total below which selection falls back to
	// a uniform choice.
	minWeightSum = 1e-300
)

// Options configures the ant colony engine.
type Options struct {
	Ants             int
	Iterations       int
	Alpha            float64
	Beta             float64
	EvaporationRate  float64
	HintTour         tsp.Tour
	InitialPheromone float64
	MinPheromone     float64
	Seed             int64
	Workers          int
	Sink             tsp.ProgressSink
}

// DefaultOptions returns Options initialized with sensible defaults.
//
// Defaults:
//   - Ants:             20
//   - Iterations:       100
//   - Alpha:            1
//   - Beta:             5
//   - EvaporationRate:  0.5
//   - InitialPheromone: 0.1
//   - MinPheromone:     1e-6
//   - HintTour, Sink:   nil
func DefaultOptions() Options {
	return Options{
		Ants:             20,
		Iterations:       100,
		Alpha:            1,
		Beta:             5,
		EvaporationRate:  0.5,
		InitialPheromone: DefaultInitialPheromone,
		MinPheromone:     DefaultMinPheromone,
	}
}

// Iteration summarizes one construction/update round.
type Iteration struct {
	// Index is the zero-based iteration number.
	Index int

	// BestDistance is the best-ever length after this iteration.
	BestDistance float64

	// IterationBestDistance is the shortest ant tour of this iteration.
	IterationBestDistance float64

	// MinTrail is the smallest off-diagonal trail after the update.
	MinTrail float64
}
