// Package cache provides the shared key-value store used to mirror catalog
// reads, plus the key scheme and a generic read-through accessor.
//
// Two backends exist: an in-process map (default) and Redis. Values are
// opaque bytes; the Accessor encodes them as JSON.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/logger"
)

// ErrMiss is returned by Get when the key holds no value.
var ErrMiss = errors.New("cache miss")

type Store interface {
	// Get returns ErrMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteMatching removes every key matching a glob pattern where only
	// '*' is special, and returns how many keys were removed.
	DeleteMatching(ctx context.Context, pattern string) (int, error)
	Close() error
}

// New builds the store selected by cfg.Backend. The Redis backend blocks
// until the server answers a ping or the connect timeout elapses.
func New(cfg *config.Config, log logger.Logger) (Store, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory, "":
		log.Info("using in-memory cache", logger.Duration("ttl", cfg.Cache.TTL))
		return NewMemoryStore(cfg.Cache.TTL), nil
	case config.CacheBackendRedis:
		client, err := Connect(ConnectOptionsFromConfig(cfg.Redis), log)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Cache.KeyPrefix, cfg.Cache.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
