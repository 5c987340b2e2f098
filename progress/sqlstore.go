package progress

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sugawarayuuta/sonnet"

	_ "modernc.org/sqlite" // SQLite driver
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS records (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT    NOT NULL,
	algorithm  TEXT    NOT NULL,
	distance   REAL    NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	metadata   TEXT,
	created_at TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_algorithm ON records(algorithm);
CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
`

// Row is one stored progress record.
type Row struct {
	ID        int64
	RunID     string
	Algorithm string
	Distance  float64
	Elapsed   time.Duration
	Metadata  map[string]any
	CreatedAt time.Time
}

// SQLStore is a ProgressSink that appends records to an SQLite database.
// Every record written through one SQLStore carries the same run ID, so
// separate invocations of a program can be told apart.
type SQLStore struct {
	mu     sync.Mutex
	db     *sql.DB
	runID  string
	logger *slog.Logger
}

// OpenSQLStore opens (creating if needed) the database at path and
// initializes its schema. A nil logger means slog.Default().
func OpenSQLStore(ctx context.Context, path string, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("progress: create %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("progress: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, sqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("progress: initialize schema: %w", err)
	}

	return &SQLStore{db: db, runID: uuid.NewString(), logger: logger}, nil
}

// RunID identifies the records written through this store.
func (s *SQLStore) RunID() string { return s.runID }

// Record implements tsp.ProgressSink. Insert failures are logged.
func (s *SQLStore) Record(label string, distance float64, elapsed time.Duration, meta map[string]any) {
	if err := s.insert(context.Background(), label, distance, elapsed, meta); err != nil {
		s.logger.Error("progress record not stored", "algorithm", label, "err", err)
	}
}

func (s *SQLStore) insert(ctx context.Context, label string, distance float64, elapsed time.Duration, meta map[string]any) error {
	var metadata sql.NullString
	if len(meta) > 0 {
		raw, err := sonnet.Marshal(meta)
		if err != nil {
			return fmt.Errorf("progress: encode metadata: %w", err)
		}
		metadata = sql.NullString{String: string(raw), Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (run_id, algorithm, distance, elapsed_ns, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID, label, distance, elapsed.Nanoseconds(), metadata,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("progress: insert record: %w", err)
	}

	return nil
}

// Records returns every stored record for label in insertion order, across
// all runs. An empty label selects every algorithm.
func (s *SQLStore) Records(ctx context.Context, label string) ([]Row, error) {
	query := `SELECT id, run_id, algorithm, distance, elapsed_ns, metadata, created_at FROM records`
	args := []any{}
	if label != "" {
		query += ` WHERE algorithm = ?`
		args = append(args, label)
	}
	query += ` ORDER BY id`

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("progress: query records: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r         Row
			elapsedNS int64
			metadata  sql.NullString
			created   string
		)
		if err = rows.Scan(&r.ID, &r.RunID, &r.Algorithm, &r.Distance, &elapsedNS, &metadata, &created); err != nil {
			return nil, fmt.Errorf("progress: scan record: %w", err)
		}
		r.Elapsed = time.Duration(elapsedNS)
		if metadata.Valid {
			if err = sonnet.Unmarshal([]byte(metadata.String), &r.Metadata); err != nil {
				return nil, fmt.Errorf("progress: decode metadata of record %d: %w", r.ID, err)
			}
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("progress: parse time of record %d: %w", r.ID, err)
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("progress: iterate records: %w", err)
	}

	return out, nil
}

// Distances returns the distances recorded for label in insertion order.
func (s *SQLStore) Distances(ctx context.Context, label string) ([]float64, error) {
	rows, err := s.Records(ctx, label)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Distance
	}

	return out, nil
}

// Reset deletes every record.
func (s *SQLStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("progress: reset records: %w", err)
	}

	return nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
