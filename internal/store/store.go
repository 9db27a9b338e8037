package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and provides access to repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps per-connection pragmas in effect and serializes
	// writers; the audit log is low volume.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() *SQLEventRepo {
	return &SQLEventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp_ms  INTEGER NOT NULL,
		request_id    TEXT    NOT NULL DEFAULT '',
		channel       TEXT    NOT NULL DEFAULT '',
		provider      TEXT    NOT NULL DEFAULT '',
		model         TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		finish_reason TEXT    NOT NULL DEFAULT '',
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_timestamp ON llm_request_events (timestamp_ms)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_channel ON llm_request_events (channel)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_request_id ON llm_request_events (request_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GIAITOAN_DB environment variable
// 2. $XDG_DATA_HOME/giaitoan/giaitoan.db
// 3. ~/.local/share/giaitoan/giaitoan.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GIAITOAN_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "giaitoan", "giaitoan.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
