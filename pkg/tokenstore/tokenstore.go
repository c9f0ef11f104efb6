// Package tokenstore is a small TTL key/value store for short-lived tokens
// (OAuth state, QR login codes). Backed by Redis so tokens survive restarts
// and are shared across instances.
package tokenstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("token not found")

type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns ErrNotFound for a missing or expired key.
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
