package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/bookx-web/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.TokenRepository interface at compile time.
var _ storage.TokenRepository = (*Store)(nil)

// Store provides Postgres-backed persistence for session tokens.
type Store struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates a new Store and runs migrations.
func NewSessionStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS web_sessions (
			id_hash TEXT PRIMARY KEY,
			token TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS web_sessions_expires_at_idx ON web_sessions (expires_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// Put inserts or replaces the token stored under key.
func (s *Store) Put(ctx context.Context, key, token string, expiresAt time.Time) error {
	const query = `
		INSERT INTO web_sessions (id_hash, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id_hash) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at;
	`
	if _, err := s.pool.Exec(ctx, query, key, token, expiresAt); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Get fetches an unexpired token by key.
func (s *Store) Get(ctx context.Context, key string, now time.Time) (string, error) {
	const query = `
	SELECT token
	FROM web_sessions
	WHERE id_hash = $1 AND expires_at > $2;
	`
	var token string
	if err := s.pool.QueryRow(ctx, query, key, now).Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return token, nil
}

// Delete removes the token stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM web_sessions WHERE id_hash = $1;`, key)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Sweep deletes rows that expired before now and reports how many were removed.
func (s *Store) Sweep(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at <= $1;`, now)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
