package library

import (
	"context"
	"errors"
	"strconv"

	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/database"
	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

type selfQuery struct {
	Username    string
	ListingType string
}

// ReadCache serves library reads through the cache store. Cached values are
// returned as stored; writes do not refresh them unless an Invalidator
// other than KeepCached is wired in.
type ReadCache struct {
	all  *cache.Accessor[struct{}, []entities.LibraryEntry]
	byID *cache.Accessor[uint, entities.LibraryEntry]
	self *cache.Accessor[selfQuery, []entities.LibraryEntry]
}

func NewReadCache(store cache.Store, entries EntryStore, log logger.Logger) *ReadCache {
	return &ReadCache{
		all: cache.NewAccessor(store,
			func(struct{}) string { return cache.LibraryEntriesKey },
			func(ctx context.Context, _ struct{}) ([]entities.LibraryEntry, error) {
				return entries.ListActive(ctx)
			},
			log,
		),
		byID: cache.NewAccessor(store,
			cache.LibraryEntryKey,
			func(ctx context.Context, id uint) (entities.LibraryEntry, error) {
				entry, err := entries.GetActiveByID(ctx, id)
				if err != nil {
					return entities.LibraryEntry{}, err
				}
				return *entry, nil
			},
			log,
		),
		self: cache.NewAccessor(store,
			func(q selfQuery) string { return cache.SelfLibraryKey(q.ListingType, q.Username) },
			func(ctx context.Context, q selfQuery) ([]entities.LibraryEntry, error) {
				return entries.ListSelf(ctx, q.Username, librarydb.SelfFilter{ListingType: q.ListingType})
			},
			log,
		),
	}
}

// GetAll returns every entry whose listing is not deleted.
func (c *ReadCache) GetAll(ctx context.Context) ([]entities.LibraryEntry, error) {
	return c.all.Get(ctx, struct{}{})
}

// GetByID returns the entry if its listing is not deleted, or a *NotFoundError.
func (c *ReadCache) GetByID(ctx context.Context, id uint) (*entities.LibraryEntry, error) {
	entry, err := c.byID.Get(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, &NotFoundError{Resource: "library entry", Key: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, err
	}
	return &entry, nil
}

// GetSelfLibrary returns username's entries with an enabled, live listing.
// listingType and folder narrow the result when non-empty. Only the listing
// type takes part in the cache key; the folder is applied to the cached list.
func (c *ReadCache) GetSelfLibrary(ctx context.Context, username, listingType, folder string) ([]entities.LibraryEntry, error) {
	entries, err := c.self.Get(ctx, selfQuery{Username: username, ListingType: listingType})
	if err != nil {
		return nil, err
	}
	if folder == "" {
		return entries, nil
	}

	filtered := make([]entities.LibraryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.InFolder(folder) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// Warm loads username's unfiltered library and the global entry list into the cache.
func (c *ReadCache) Warm(ctx context.Context, username string) error {
	if _, err := c.GetAll(ctx); err != nil {
		return err
	}
	_, err := c.GetSelfLibrary(ctx, username, "", "")
	return err
}
