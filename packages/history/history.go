// Package history persists run results to a local SQLite database so
// past runs can be listed and compared.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restsuite/restsuite/packages/runner"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded run.
type Entry struct {
	ID       string
	Start    time.Time
	End      time.Time
	Files    int
	Suites   int
	Tests    int
	Passes   int
	Pending  int
	Failures int
	Duration string
	Parallel bool
}

// Store is a run history backed by SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id        TEXT PRIMARY KEY,
	start     TIMESTAMP NOT NULL,
	end       TIMESTAMP NOT NULL,
	files     INTEGER NOT NULL,
	suites    INTEGER NOT NULL,
	tests     INTEGER NOT NULL,
	passes    INTEGER NOT NULL,
	pending   INTEGER NOT NULL,
	failures  INTEGER NOT NULL,
	duration  TEXT NOT NULL,
	parallel  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_start ON runs(start);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record persists one run and returns its generated ID.
func (s *Store) Record(ctx context.Context, agg *runner.AggregateStats, parallel bool) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, start, end, files, suites, tests, passes, pending, failures, duration, parallel)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, agg.Start, agg.End, agg.Files, agg.Suites, agg.Tests,
		agg.Passes, agg.Pending, agg.Failures, agg.Duration, parallel,
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start, end, files, suites, tests, passes, pending, failures, duration, parallel
		FROM runs ORDER BY start DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Start, &e.End, &e.Files, &e.Suites, &e.Tests,
			&e.Passes, &e.Pending, &e.Failures, &e.Duration, &e.Parallel); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Get returns one run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, start, end, files, suites, tests, passes, pending, failures, duration, parallel
		FROM runs WHERE id = ?`, id).
		Scan(&e.ID, &e.Start, &e.End, &e.Files, &e.Suites, &e.Tests,
			&e.Passes, &e.Pending, &e.Failures, &e.Duration, &e.Parallel)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
