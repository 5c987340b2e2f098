package tsp

import (
	"errors"
	"time"
)

// Sentinel errors shared by every solver in this module.
//
// Package-specific configuration errors wrap ErrInvalidInput, so callers can
// match any configuration fault with errors.Is(err, tsp.ErrInvalidInput).
var (
	// ErrInvalidInput is returned for fewer than two cities, non-finite
	// coordinates, or a malformed configuration.
	ErrInvalidInput = errors.New("tsp: invalid input")

	// ErrDimensionMismatch indicates a tour whose length or contents do not
	// match the city count (not a permutation of {0..n-1}).
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrStartOutOfRange indicates a start vertex outside [0..n-1].
	ErrStartOutOfRange = errors.New("tsp: start vertex out of range")

	// ErrTooLarge is returned by HeldKarp for instances above MaxExactCities.
	ErrTooLarge = errors.New("tsp: instance too large for exact solver")
)

// Algorithm labels passed to ProgressSink.Record.
const (
	LabelGenetic   = "GA"
	LabelAntColony = "ACO"
	LabelHybrid    = "Hybrid"
)

// City is an immutable 2-D coordinate. A city is identified by its index in
// the input slice.
type City struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Tour is an open cyclic visiting order: a permutation of {0..n-1} whose
// closing edge tour[n-1]→tour[0] is implied and not repeated.
type Tour []int

// Clone returns an independent copy of t.
func (t Tour) Clone() Tour {
	if t == nil {
		return nil
	}
	out := make(Tour, len(t))
	copy(out, t)

	return out
}

// Result holds the outcome of a solver run.
type Result struct {
	// Tour is the best visiting order found (open form, len == n).
	Tour Tour

	// Distance is the total cycle length of Tour, closing edge included.
	Distance float64
}

// ProgressSink receives per-step telemetry from the engines.
//
// The engines call Record once per generation (GA) or iteration (ACO), and the
// hybrid coordinator once for its total. Calls are fire-and-forget: nothing is
// read back. A nil sink is valid and disables telemetry.
//
// Record is always invoked from the engine's controller goroutine, never from
// parallel workers; implementations shared across engines running in parallel
// must still be safe for concurrent use.
type ProgressSink interface {
	Record(label string, distance float64, elapsed time.Duration, meta map[string]any)
}

// SinkFunc adapts a plain function to ProgressSink.
type SinkFunc func(label string, distance float64, elapsed time.Duration, meta map[string]any)

// Record calls f.
func (f SinkFunc) Record(label string, distance float64, elapsed time.Duration, meta map[string]any) {
	f(label, distance, elapsed, meta)
}

// Emit forwards a record to sink when sink is non-nil.
func Emit(sink ProgressSink, label string, distance float64, elapsed time.Duration, meta map[string]any) {
	if sink == nil {
		return
	}
	sink.Record(label, distance, elapsed, meta)
}
