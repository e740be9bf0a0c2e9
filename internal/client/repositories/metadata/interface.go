// Package metadata is a small key/value repository over the local SQLite
// database. The session store keeps its persisted state here.
package metadata

import (
	"context"
)

// Repository stores opaque byte values under string keys.
type Repository interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns the values of the keys that exist. Missing keys are
	// absent from the map.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
