// Package store is the Postgres access layer. Queries are hand-built with
// positional placeholders; every mutation is row-scoped by tag_id (no
// full-table writes) and reports rows affected so callers can detect lost
// races.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Sentinel errors surfaced by mutations. Handlers map them to HTTP status
// codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrPersistenceFailure = errors.New("persistence failure")
)

// Store wraps a database handle. The same *sql.DB is shared by all request
// handlers; Postgres row locks provide per-tag atomicity.
type Store struct {
	DB  *sql.DB
	now func() time.Time
}

// New creates a Store. The clock is injectable for tests; nil means
// time.Now.
func New(db *sql.DB, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{DB: db, now: now}
}

// Open connects to Postgres via the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return New(db, nil), nil
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	return s.DB.Close()
}
