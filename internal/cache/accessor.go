package cache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mrlokans/catalog/internal/logger"
)

// Accessor is a read-through view over a Store. The key is derived from the
// argument; on a miss the loader runs and its result is stored as JSON.
// Loader errors are returned as-is and never cached, so a not-found lookup
// leaves the key empty.
type Accessor[A any, T any] struct {
	store Store
	key   func(A) string
	load  func(context.Context, A) (T, error)
	log   logger.Logger
}

func NewAccessor[A any, T any](
	store Store,
	key func(A) string,
	load func(context.Context, A) (T, error),
	log logger.Logger,
) *Accessor[A, T] {
	return &Accessor[A, T]{store: store, key: key, load: load, log: log}
}

// Get returns the cached value for arg, loading and storing it on a miss.
// Store failures degrade to a direct load.
func (a *Accessor[A, T]) Get(ctx context.Context, arg A) (T, error) {
	key := a.key(arg)

	data, err := a.store.Get(ctx, key)
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			return value, nil
		}
		a.log.Warn("discarding undecodable cache value", logger.String("key", key))
	case !errors.Is(err, ErrMiss):
		a.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
	}

	value, err := a.load(ctx, arg)
	if err != nil {
		var zero T
		return zero, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		a.log.Warn("cache value not encodable", logger.String("key", key), logger.Error(err))
		return value, nil
	}
	if err := a.store.Set(ctx, key, encoded); err != nil {
		a.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
	}
	return value, nil
}

// Key exposes the key used for arg.
func (a *Accessor[A, T]) Key(arg A) string {
	return a.key(arg)
}
