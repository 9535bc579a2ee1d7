// Package store provides the ephemeral key-value cache used to correlate
// the separate HTTP round-trips of an OAuth flow: state tokens written at
// authorization time and credential blobs written at callback time, both
// with short TTLs. Two interchangeable backends exist: a redis-backed store
// and an in-process fallback with identical external behavior.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for keys that were never set, were
// deleted, or whose TTL has elapsed.
var ErrNotFound = errors.New("store: key not found")

// Store is the contract shared by both backends. A ttl of zero means the
// key does not expire. Delete is idempotent.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
