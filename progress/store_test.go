package progress_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/metatsp/progress"
	"github.com/katalvlaran/metatsp/tsp"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s := progress.OpenStore(path, quiet())
	require.Equal(t, path, s.Path())

	s.Record(tsp.LabelGenetic, 120, 1500*time.Millisecond, map[string]any{"generation": 0})
	s.Record(tsp.LabelGenetic, 110, 500*time.Millisecond, nil)
	s.Record(tsp.LabelHybrid, 100, 2*time.Second, map[string]any{"polished": false})
	require.NoError(t, s.Flush())

	reopened := progress.OpenStore(path, quiet())
	ga, ok := reopened.Get(tsp.LabelGenetic)
	require.True(t, ok)
	require.Equal(t, []float64{120, 110}, ga.Distances)
	require.Equal(t, []float64{1.5, 0.5}, ga.Times)
	require.Len(t, ga.Extra, 1, "records without metadata add no extra entry")
	require.Equal(t, 0.0, ga.Extra[0]["generation"])

	hy, ok := reopened.Get(tsp.LabelHybrid)
	require.True(t, ok)
	require.Equal(t, []float64{100}, hy.Distances)

	aco, ok := reopened.Get(tsp.LabelAntColony)
	require.True(t, ok, "standard labels always exist")
	require.Empty(t, aco.Distances)
}

func TestStore_FileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s := progress.OpenStore(path, quiet())
	s.Record(tsp.LabelAntColony, 7, time.Second, nil)
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"GA":     {"distances": [],  "times": [],  "extra": []},
		"ACO":    {"distances": [7], "times": [1], "extra": []},
		"Hybrid": {"distances": [],  "times": [],  "extra": []}
	}`, string(raw))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files left behind")
}

func TestStore_RecordsAreBufferedUntilFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s := progress.OpenStore(path, quiet())

	require.NoError(t, s.Flush(), "nothing buffered")
	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	for i := 0; i < 100; i++ {
		s.Record(tsp.LabelGenetic, float64(i), 0, nil)
	}
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist, "records stay in memory")

	require.NoError(t, s.Flush())
	ga, _ := progress.OpenStore(path, quiet()).Get(tsp.LabelGenetic)
	require.Len(t, ga.Distances, 100)

	// A clean store does not rewrite the file.
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	require.NoError(t, s.Flush())
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{}", string(raw))
}

func TestStore_FlushError(t *testing.T) {
	s := progress.OpenStore(filepath.Join(t.TempDir(), "missing", "stats.json"), quiet())
	s.Record(tsp.LabelHybrid, 1, 0, nil)
	require.Error(t, s.Flush())
}

func TestStore_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var logs bytes.Buffer
	s := progress.OpenStore(path, slog.New(slog.NewTextHandler(&logs, nil)))
	require.Contains(t, logs.String(), "stats file ignored")

	ga, ok := s.Get(tsp.LabelGenetic)
	require.True(t, ok)
	require.Empty(t, ga.Distances)

	s.Record(tsp.LabelGenetic, 1, 0, nil)
	require.NoError(t, s.Flush())
	ga, _ = progress.OpenStore(path, quiet()).Get(tsp.LabelGenetic)
	require.Equal(t, []float64{1}, ga.Distances, "corrupt file replaced")
}

func TestStore_UnknownLabelAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s := progress.OpenStore(path, quiet())

	_, ok := s.Get("SA")
	require.False(t, ok)
	s.Record("SA", 3, 0, nil)
	sa, ok := s.Get("SA")
	require.True(t, ok)
	require.Equal(t, []float64{3}, sa.Distances)
	require.Len(t, s.All(), 4)

	require.NoError(t, s.Reset())
	require.Len(t, s.All(), 3)
	_, ok = progress.OpenStore(path, quiet()).Get("SA")
	require.False(t, ok)
}

func TestStore_CopiesAreIndependent(t *testing.T) {
	s := progress.OpenStore(filepath.Join(t.TempDir(), "stats.json"), quiet())
	meta := map[string]any{"k": 1}
	s.Record(tsp.LabelGenetic, 5, 0, meta)
	meta["k"] = 2

	ga, _ := s.Get(tsp.LabelGenetic)
	require.Equal(t, 1, ga.Extra[0]["k"])
	ga.Distances[0] = 99
	ga.Extra[0]["k"] = 3

	again, _ := s.Get(tsp.LabelGenetic)
	require.Equal(t, 5.0, again.Distances[0])
	require.Equal(t, 1, again.Extra[0]["k"])
}

func TestStore_ConcurrentRecords(t *testing.T) {
	s := progress.OpenStore(filepath.Join(t.TempDir(), "stats.json"), quiet())

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				s.Record(tsp.LabelHybrid, float64(i), 0, nil)
			}
		}()
	}
	wg.Wait()

	hy, _ := s.Get(tsp.LabelHybrid)
	require.Len(t, hy.Distances, 40)
	require.Len(t, hy.Times, 40)
}

// SQLStoreSuite opens a fresh database per test.
type SQLStoreSuite struct {
	suite.Suite
	ctx   context.Context
	path  string
	store *progress.SQLStore
}

func TestSQLStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLStoreSuite))
}

func (s *SQLStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "nested", "stats.db")

	var err error
	s.store, err = progress.OpenSQLStore(s.ctx, s.path, quiet())
	require.NoError(s.T(), err)
}

func (s *SQLStoreSuite) TearDownTest() {
	if s.store != nil {
		require.NoError(s.T(), s.store.Close())
	}
}

func (s *SQLStoreSuite) TestRecordAndQuery() {
	before := time.Now().UTC().Add(-time.Second)
	s.store.Record(tsp.LabelGenetic, 120, 3*time.Millisecond, map[string]any{"generation": 0})
	s.store.Record(tsp.LabelAntColony, 95, time.Millisecond, nil)
	s.store.Record(tsp.LabelGenetic, 110, 2*time.Millisecond, map[string]any{"generation": 1})

	rows, err := s.store.Records(s.ctx, tsp.LabelGenetic)
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 2)
	require.Equal(s.T(), 120.0, rows[0].Distance)
	require.Equal(s.T(), 3*time.Millisecond, rows[0].Elapsed)
	require.Equal(s.T(), 1.0, rows[1].Metadata["generation"])
	require.Equal(s.T(), s.store.RunID(), rows[0].RunID)
	require.Less(s.T(), rows[0].ID, rows[1].ID)
	require.True(s.T(), rows[0].CreatedAt.After(before))

	all, err := s.store.Records(s.ctx, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 3)
	require.Nil(s.T(), all[1].Metadata)

	d, err := s.store.Distances(s.ctx, tsp.LabelAntColony)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{95}, d)
}

// TestRunsAreDistinguished reopens the database and checks both runs persist.
func (s *SQLStoreSuite) TestRunsAreDistinguished() {
	s.store.Record(tsp.LabelHybrid, 10, 0, nil)
	first := s.store.RunID()
	require.NoError(s.T(), s.store.Close())

	var err error
	s.store, err = progress.OpenSQLStore(s.ctx, s.path, quiet())
	require.NoError(s.T(), err)
	require.NotEqual(s.T(), first, s.store.RunID())
	s.store.Record(tsp.LabelHybrid, 9, 0, nil)

	rows, err := s.store.Records(s.ctx, tsp.LabelHybrid)
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 2)
	require.Equal(s.T(), first, rows[0].RunID)
	require.Equal(s.T(), s.store.RunID(), rows[1].RunID)
}

func (s *SQLStoreSuite) TestReset() {
	s.store.Record(tsp.LabelGenetic, 1, 0, nil)
	require.NoError(s.T(), s.store.Reset(s.ctx))

	d, err := s.store.Distances(s.ctx, "")
	require.NoError(s.T(), err)
	require.Empty(s.T(), d)
}

func (s *SQLStoreSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.store.Records(ctx, "")
	require.Error(s.T(), err)
}
