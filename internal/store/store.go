// Package store defines the keyed persistence port used by the
// repositories, together with its in-memory and SQLite adapters.
package store

import (
	"context"
	"errors"
)

// Collection keys. Each (partition, key) pair holds one whole collection
// serialized as a single JSON blob; there are no partial writes.
const (
	KeyEvents     = "events"
	KeyEventTypes = "eventTypes"
)

// ErrNotFound is returned by Get when the partition/key pair has never
// been written.
var ErrNotFound = errors.New("store: key not found")

// KeyedStore is a namespaced key-value surface. A partition is an opaque
// identifier, normally a user id; callers are expected to treat any Get
// failure as an absent value and fall back to their defaults.
type KeyedStore interface {
	Get(ctx context.Context, partition, key string) ([]byte, error)
	Set(ctx context.Context, partition, key string, value []byte) error
}
