// Package genetic defines the configuration, errors and records of the
// genetic TSP engine.
//
// Options:
//
//	– PopulationSize: individuals per generation (≥ 1, ≥ ElitismCount).
//	– MaxGenerations: generations before the engine is exhausted (≥ 1).
//	– MutationRate:   per-position swap probability in [0,1].
//	– ElitismCount:   best individuals copied unchanged (≥ 0).
//	– TournamentSize: candidates per tournament (0 ⇒ DefaultTournamentSize).
//	– Seed:           0 ⇒ non-reproducible; otherwise deterministic.
//	– Workers:        child-construction goroutines (≤ 0 ⇒ GOMAXPROCS).
//	– Sink:           optional telemetry receiver.
//
// Errors (sentinel, all wrap tsp.ErrInvalidInput except ErrExhausted):
//
//	– ErrPopulationSize, ErrGenerations, ErrMutationRate, ErrElitism, ErrTournamentSize.
//	– ErrExhausted: normal end of the stepwise iteration.
package genetic

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/metatsp/tsp"
)

// Sentinel errors returned by the genetic engine.
var (
	// ErrExhausted signals that MaxGenerations steps have been produced.
	// It is a normal termination signal, not a fault; the engine cannot be
	// resumed and a fresh engine must be built to run again.
	ErrExhausted = errors.New("genetic: generations exhausted")

	// ErrPopulationSize indicates PopulationSize < 1.
	ErrPopulationSize = fmt.Errorf("%w: genetic: population size must be at least 1", tsp.ErrInvalidInput)

	// ErrGenerations indicates MaxGenerations < 1.
	ErrGenerations = fmt.Errorf("%w: genetic: max generations must be at least 1", tsp.ErrInvalidInput)

	// ErrMutationRate indicates a MutationRate outside [0,1] or NaN.
	ErrMutationRate = fmt.Errorf("%w: genetic: mutation rate must be in [0,1]", tsp.ErrInvalidInput)

	// ErrElitism indicates ElitismCount < 0 or ElitismCount > PopulationSize.
	ErrElitism = fmt.Errorf("%w: genetic: elitism count must be in [0, population size]", tsp.ErrInvalidInput)

	// ErrTournamentSize indicates a negative TournamentSize.
	ErrTournamentSize = fmt.Errorf("%w: genetic: tournament size must be positive", tsp.ErrInvalidInput)
)

// DefaultTournamentSize is the k of k-way tournament selection.
const DefaultTournamentSize = 3

// Options configures the genetic engine.
type Options struct {
	PopulationSize int
	MaxGenerations int
	MutationRate   float64
	ElitismCount   int
	TournamentSize int
	Seed           int64
	Workers        int
	Sink           tsp.ProgressSink
}

// DefaultOptions returns Options initialized with sensible defaults.
//
// Defaults:
//   - PopulationSize: 100
//   - MaxGenerations: 500
//   - MutationRate:   0.02
//   - ElitismCount:   2
//   - TournamentSize: 3
//   - Seed:           0 (non-reproducible)
//   - Workers:        0 (GOMAXPROCS)
//   - Sink:           nil (telemetry skipped)
func DefaultOptions() Options {
	return Options{
		PopulationSize: 100,
		MaxGenerations: 500,
		MutationRate:   0.02,
		ElitismCount:   2,
		TournamentSize: DefaultTournamentSize,
	}
}

// State is the position of an engine in its stepwise lifecycle:
// Unstarted → Running → Exhausted, strictly forward.
type State int

const (
	// Unstarted: no generation has been produced yet.
	Unstarted State = iota
	// Running: at least one generation produced, more remain.
	Running
	// Exhausted: MaxGenerations produced; terminal.
	Exhausted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Running:
		return "running"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Generation is the record produced by one Step.
type Generation struct {
	// Index is the zero-based generation number.
	Index int

	// Best is the best tour seen across all generations so far (a copy).
	Best tsp.Tour

	// BestDistance is the length of Best; non-increasing across steps.
	BestDistance float64

	// CurrentBestDistance is the best length within this generation only.
	CurrentBestDistance float64

	// Elapsed is the wall-clock time spent producing this generation.
	Elapsed time.Duration
}
