package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// TokenRepository persists bearer tokens keyed by a hashed session id.
type TokenRepository interface {
	Put(ctx context.Context, key, token string, expiresAt time.Time) error
	// Get returns ErrNotFound for unknown keys and for rows expired at now.
	Get(ctx context.Context, key string, now time.Time) (string, error)
	Delete(ctx context.Context, key string) error
}
