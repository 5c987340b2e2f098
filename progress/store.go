package progress

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"github.com/katalvlaran/metatsp/tsp"
)

// DefaultStatsFile is the statistics file used when none is configured.
const DefaultStatsFile = "stats.json"

// Series is the recorded history of one algorithm.
// Distances[i] and Times[i] (seconds) belong to the same record; Extra holds
// the metadata of records that carried any.
type Series struct {
	Distances []float64        `json:"distances"`
	Times     []float64        `json:"times"`
	Extra     []map[string]any `json:"extra"`
}

func (s Series) clone() Series {
	out := Series{
		Distances: slices.Clone(s.Distances),
		Times:     slices.Clone(s.Times),
		Extra:     make([]map[string]any, len(s.Extra)),
	}
	for i, m := range s.Extra {
		out.Extra[i] = maps.Clone(m)
	}

	return out
}

// Store is a ProgressSink that keeps per-algorithm series in a JSON file.
// The file is read once by OpenStore. Records are buffered in memory and
// written by Flush (or Close); Reset writes at once.
// Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	data  map[string]Series
	dirty bool
}

// OpenStore loads path if it exists. A missing file starts empty; an
// unreadable or corrupt file is logged and also starts empty (it is replaced
// on the next flush). A nil logger means slog.Default().
func OpenStore(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultStatsFile
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path}

	data, err := loadSeries(path)
	if err != nil {
		logger.Warn("stats file ignored", "path", path, "err", err)
	}
	s.data = data

	return s
}

// loadSeries always returns a usable map with the standard labels present.
func loadSeries(path string) (map[string]Series, error) {
	data := emptySeries()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return data, fmt.Errorf("progress: read %s: %w", path, err)
	}

	var loaded map[string]Series
	if err = sonnet.Unmarshal(raw, &loaded); err != nil {
		return data, fmt.Errorf("progress: decode %s: %w", path, err)
	}
	maps.Copy(data, loaded)

	return data, nil
}

func newSeries() Series {
	return Series{Distances: []float64{}, Times: []float64{}, Extra: []map[string]any{}}
}

func emptySeries() map[string]Series {
	return map[string]Series{
		tsp.LabelGenetic:   newSeries(),
		tsp.LabelAntColony: newSeries(),
		tsp.LabelHybrid:    newSeries(),
	}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Record implements tsp.ProgressSink. Unknown labels get a new series.
// Nothing is written until Flush.
func (s *Store) Record(label string, distance float64, elapsed time.Duration, meta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sr, ok := s.data[label]
	if !ok {
		sr = newSeries()
	}
	sr.Distances = append(sr.Distances, distance)
	sr.Times = append(sr.Times, elapsed.Seconds())
	if len(meta) > 0 {
		sr.Extra = append(sr.Extra, maps.Clone(meta))
	}
	s.data[label] = sr
	s.dirty = true
}

// Flush writes buffered records to the file. It is a no-op when nothing
// changed since the last write.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	return s.save()
}

// Close flushes the store.
func (s *Store) Close() error {
	return s.Flush()
}

// Reset clears every series and rewrites the file.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = emptySeries()

	return s.save()
}

// Get returns a copy of one algorithm's series, or false if it was never seen.
func (s *Store) Get(label string) (Series, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sr, ok := s.data[label]
	if !ok {
		return Series{}, false
	}

	return sr.clone(), true
}

// All returns a copy of every series keyed by algorithm label.
func (s *Store) All() map[string]Series {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]Series, len(s.data))
	for k, v := range s.data {
		out[k] = v.clone()
	}

	return out
}

// save replaces the file via a temporary sibling and rename.
// Caller holds s.mu.
func (s *Store) save() error {
	raw, err := sonnet.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("progress: encode stats: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".stats-*.json")
	if err != nil {
		return fmt.Errorf("progress: write %s: %w", s.path, err)
	}
	if _, err = tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("progress: write %s: %w", s.path, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("progress: write %s: %w", s.path, err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("progress: write %s: %w", s.path, err)
	}
	s.dirty = false

	return nil
}
