package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for keys that were never written.
// Callers that model "absent means empty" translate it themselves.
var ErrKeyNotFound = errors.New("key not found")

// KV is the storage primitive the favourites and session stores write
// through: a flat string-keyed map of serialized records, last write wins.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
