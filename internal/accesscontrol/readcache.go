// Package accesscontrol serves access control levels through the cache store.
package accesscontrol

import (
	"context"

	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

type Source interface {
	GetAll(ctx context.Context) ([]entities.AccessControl, error)
	GetByTitle(ctx context.Context, title string) (*entities.AccessControl, error)
}

type ReadCache struct {
	all     *cache.Accessor[struct{}, []entities.AccessControl]
	byTitle *cache.Accessor[string, entities.AccessControl]
}

func NewReadCache(store cache.Store, source Source, log logger.Logger) *ReadCache {
	return &ReadCache{
		all: cache.NewAccessor(store,
			func(struct{}) string { return cache.AccessControlListKey },
			func(ctx context.Context, _ struct{}) ([]entities.AccessControl, error) {
				return source.GetAll(ctx)
			},
			log,
		),
		byTitle: cache.NewAccessor(store,
			cache.AccessControlKey,
			func(ctx context.Context, title string) (entities.AccessControl, error) {
				control, err := source.GetByTitle(ctx, title)
				if err != nil {
					return entities.AccessControl{}, err
				}
				return *control, nil
			},
			log,
		),
	}
}

func (c *ReadCache) GetAll(ctx context.Context) ([]entities.AccessControl, error) {
	return c.all.Get(ctx, struct{}{})
}

// GetByTitle looks up a level by exact title. An unknown title returns an
// error wrapping database.ErrNotFound and is not cached.
func (c *ReadCache) GetByTitle(ctx context.Context, title string) (*entities.AccessControl, error) {
	control, err := c.byTitle.Get(ctx, title)
	if err != nil {
		return nil, err
	}
	return &control, nil
}
