package storage

import (
	"context"
	"errors"
)

// Keys of the two records the engine persists.
const (
	KeyProfile     = "profile"
	KeyMealEntries = "meal_entries"
)

// ErrNotFound is returned by Get when no record exists under the key.
var ErrNotFound = errors.New("storage: record not found")

// Store is the durable key-value boundary: each record is read and written in
// full as an opaque blob. Services receive a Store instead of touching the
// database directly, so tests substitute MemStore for the real thing.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
