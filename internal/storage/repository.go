package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Repository persists the store snapshot in a local sqlite database. The
// snapshot is one JSON document per installation, kept in a single-row
// table so every write replaces the previous state atomically.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  payload BLOB NOT NULL,
  saved_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable verifies the database file accepts writes before the app
// starts mutating state.
func (r *Repository) CheckWritable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS write_check (id INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DROP TABLE write_check`); err != nil {
		return fmt.Errorf("write check cleanup: %w", err)
	}
	return nil
}

func (r *Repository) SaveSnapshot(ctx context.Context, payload []byte) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO snapshot (id, payload, saved_at)
VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  payload=excluded.payload,
  saved_at=excluded.saved_at
`, payload, now)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the last persisted document, or nil when no
// snapshot has been written yet.
func (r *Repository) LoadSnapshot(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM snapshot WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return payload, nil
}
