// Package store persists normalized turnout records in SQLite, one row
// per (source, state, year).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/electomaps/turnoutmap/internal/turnout"
)

// Store wraps the SQLite database holding imported turnout data.
type Store struct {
	db *sql.DB
}

// Open creates or opens the store at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS turnout_records (
    source TEXT NOT NULL,
    state TEXT NOT NULL,
    year INTEGER NOT NULL,
    turnout REAL NOT NULL,
    PRIMARY KEY (source, state, year)
);

CREATE INDEX IF NOT EXISTS idx_turnout_source_year ON turnout_records(source, year);
`

// ReplaceSource atomically replaces all records for one data source.
// Imports are wholesale: partial merges would leave stale years behind.
func (s *Store) ReplaceSource(ctx context.Context, source string, records []turnout.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM turnout_records WHERE source = ?`, source); err != nil {
		return fmt.Errorf("clearing source %s: %w", source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO turnout_records (source, state, year, turnout)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, source, r.State, r.Year, r.Turnout); err != nil {
			return fmt.Errorf("inserting record (%s, %d): %w", r.State, r.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// RecordsBySource returns all records for one data source, ordered by
// state then year.
func (s *Store) RecordsBySource(ctx context.Context, source string) ([]turnout.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT state, year, turnout FROM turnout_records
		WHERE source = ? ORDER BY state, year`, source)
	if err != nil {
		return nil, fmt.Errorf("querying records for %s: %w", source, err)
	}
	defer rows.Close()

	var records []turnout.Record
	for rows.Next() {
		var r turnout.Record
		if err := rows.Scan(&r.State, &r.Year, &r.Turnout); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Sources lists the data sources with at least one record.
func (s *Store) Sources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT source FROM turnout_records ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}
