// Package progress provides tsp.ProgressSink implementations: structured
// logging, Prometheus metrics, a JSON statistics file, an SQLite statistics
// database, and a fan-out combinator.
//
// The engines treat sinks as fire-and-forget, so sinks never return errors.
// Persistence failures are reported through the sink's *slog.Logger.
package progress

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/katalvlaran/metatsp/tsp"
)

// Multi fans a record out to every non-nil sink, in order.
type Multi []tsp.ProgressSink

// Record implements tsp.ProgressSink.
func (m Multi) Record(label string, distance float64, elapsed time.Duration, meta map[string]any) {
	for _, s := range m {
		if s != nil {
			s.Record(label, distance, elapsed, meta)
		}
	}
}

// NewMulti returns a sink over the non-nil members of sinks, or nil when
// none remain (so engines skip telemetry entirely).
func NewMulti(sinks ...tsp.ProgressSink) tsp.ProgressSink {
	out := make(Multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

// LogSink writes each record as a structured log line.
// Per-step records (GA, ACO) go to Debug; anything else goes to Info.
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink returns a LogSink; a nil logger means slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogSink{Logger: logger}
}

// Record implements tsp.ProgressSink.
func (s *LogSink) Record(label string, distance float64, elapsed time.Duration, meta map[string]any) {
	level := slog.LevelInfo
	if label == tsp.LabelGenetic || label == tsp.LabelAntColony {
		level = slog.LevelDebug
	}

	attrs := make([]any, 0, 6+2*len(meta))
	attrs = append(attrs, "algorithm", label, "distance", distance, "elapsed", elapsed)
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		attrs = append(attrs, k, meta[k])
	}
	s.Logger.Log(context.Background(), level, "progress", attrs...)
}
