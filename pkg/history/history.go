// Package history persists one audit row per dispatched invocation in a
// SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id     TEXT PRIMARY KEY,
	caller TEXT NOT NULL,
	line   TEXT NOT NULL,
	callee TEXT NOT NULL,
	ok     INTEGER NOT NULL,
	error  TEXT NOT NULL DEFAULT '',
	at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS invocations_at ON invocations (at);
`

// Entry is one recorded invocation.
type Entry struct {
	ID     uuid.UUID
	Caller string
	Line   string
	Callee string
	OK     bool
	Error  string
	At     time.Time
}

// Store persists invocation entries.
type Store struct {
	db *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Record inserts one entry.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == uuid.Nil {
		return fmt.Errorf("entry id is required")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (id, caller, line, callee, ok, error, at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.Caller,
		entry.Line,
		entry.Callee,
		entry.OK,
		entry.Error,
		toMillis(entry.At),
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}

	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, caller, line, callee, ok, error, at FROM invocations ORDER BY at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var id string
		var at int64

		if err := rows.Scan(&id, &entry.Caller, &entry.Line, &entry.Callee, &entry.OK, &entry.Error, &at); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}

		entry.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse invocation id %q: %w", id, err)
		}
		entry.At = fromMillis(at)

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invocations: %w", err)
	}

	return entries, nil
}
