// Package history persists a summary row per analysis run to a
// libsql/Turso database, so past runs can be compared without re-analyzing
// the export. Persistence lives here, never in the analysis core.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// Run is one recorded analysis run.
type Run struct {
	ID                 string
	CreatedAt          time.Time
	Source             string
	Conversations      int
	Messages           int
	UserMessages       int
	AssistantMessages  int
	FailureRatePercent float64
	StartDate          string
	EndDate            string
}

// Store wraps the run history database.
type Store struct {
	db *sql.DB
}

// NewStore opens the history database. The connection pool keeps no idle
// connections: Turso aggressively closes idle streams, and stale
// connections surface as "stream not found" errors.
func NewStore(databaseURL, authToken string) (*Store, error) {
	connStr := databaseURL
	if authToken != "" {
		connStr += "?authToken=" + authToken
	}
	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	return &Store{db: db}, nil
}

// EnsureSchema creates the runs table if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			conversations INTEGER NOT NULL,
			messages INTEGER NOT NULL,
			user_messages INTEGER NOT NULL,
			assistant_messages INTEGER NOT NULL,
			failure_rate REAL NOT NULL,
			start_date TEXT,
			end_date TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analysis_runs table: %w", err)
	}
	return nil
}

// RecordRun inserts one run.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (
			id, created_at, source, conversations, messages,
			user_messages, assistant_messages, failure_rate,
			start_date, end_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.CreatedAt.Format(time.RFC3339), run.Source,
		run.Conversations, run.Messages, run.UserMessages,
		run.AssistantMessages, run.FailureRatePercent,
		run.StartDate, run.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, conversations, messages,
		       user_messages, assistant_messages, failure_rate,
		       start_date, end_date
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var startDate, endDate sql.NullString
		if err := rows.Scan(
			&run.ID, &createdAt, &run.Source, &run.Conversations,
			&run.Messages, &run.UserMessages, &run.AssistantMessages,
			&run.FailureRatePercent, &startDate, &endDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		run.StartDate = startDate.String
		run.EndDate = endDate.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
