// Package history records completed expansion runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run represents one recorded expansion
type Run struct {
	ID             int64
	RunID          string // UUID assigned when the run is recorded
	Pattern        string
	WordlistPath   string
	WordCount      int
	CandidateCount int
	OutputPath     string // Empty when candidates went to stdout
	Duration       time.Duration
	Timestamp      time.Time
}

// Store manages the SQLite run history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun inserts run, assigning RunID (when empty) and ID.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}

	query := `INSERT INTO runs
		(run_id, pattern, wordlist_path, word_count, candidate_count, output_path, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		run.RunID,
		run.Pattern,
		nullString(run.WordlistPath),
		run.WordCount,
		run.CandidateCount,
		nullString(run.OutputPath),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	run.ID = id
	return nil
}

// RecentRuns returns up to limit runs, most recent first. A non-empty
// pattern restricts the result to runs of that exact pattern. limit <= 0
// returns all.
func (s *Store) RecentRuns(ctx context.Context, pattern string, limit int) ([]*Run, error) {
	query := `SELECT id, run_id, pattern, wordlist_path, word_count, candidate_count, output_path, duration_ms, timestamp
		FROM runs`
	args := []interface{}{}
	if pattern != "" {
		query += ` WHERE pattern = ?`
		args = append(args, pattern)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var wordlistPath, outputPath sql.NullString
		var durationMs int64
		if err := rows.Scan(
			&run.ID,
			&run.RunID,
			&run.Pattern,
			&wordlistPath,
			&run.WordCount,
			&run.CandidateCount,
			&outputPath,
			&durationMs,
			&run.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if wordlistPath.Valid {
			run.WordlistPath = wordlistPath.String
		}
		if outputPath.Valid {
			run.OutputPath = outputPath.String
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return runs, nil
}

// CountRuns returns the number of recorded runs for pattern, or all runs
// when pattern is empty.
func (s *Store) CountRuns(ctx context.Context, pattern string) (int, error) {
	var count int
	var err error
	if pattern == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE pattern = ?`, pattern).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

// Clear deletes every recorded run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
