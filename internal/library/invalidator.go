package library

import (
	"context"

	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/logger"
)

// Invalidator is told about every library write. The default policy keeps
// cached reads until the store expires them.
type Invalidator interface {
	EntriesWritten(ctx context.Context, username string, entryIDs ...uint)
}

// KeepCached never purges anything: cached reads may be stale after a write.
type KeepCached struct{}

func (KeepCached) EntriesWritten(context.Context, string, ...uint) {}

// Warmer schedules a background reload of a user's library into the cache.
type Warmer interface {
	EnqueueLibraryWarmup(ctx context.Context, username string) error
}

// PurgeOnWrite deletes the keys a write can make stale: the global entry
// list, each touched entry and every listing-type view of the user's
// library. When a Warmer is set the user's library is reloaded in the
// background.
type PurgeOnWrite struct {
	store  cache.Store
	warmer Warmer
	log    logger.Logger
}

func NewPurgeOnWrite(store cache.Store, warmer Warmer, log logger.Logger) *PurgeOnWrite {
	return &PurgeOnWrite{store: store, warmer: warmer, log: log}
}

func (p *PurgeOnWrite) EntriesWritten(ctx context.Context, username string, entryIDs ...uint) {
	keys := make([]string, 0, len(entryIDs)+1)
	keys = append(keys, cache.LibraryEntriesKey)
	for _, id := range entryIDs {
		keys = append(keys, cache.LibraryEntryKey(id))
	}

	if err := p.store.Delete(ctx, keys...); err != nil {
		p.log.Warn("failed to purge library cache keys", logger.String("username", username), logger.Error(err))
	}
	if _, err := p.store.DeleteMatching(ctx, cache.SelfLibraryPattern(username)); err != nil {
		p.log.Warn("failed to purge self library keys", logger.String("username", username), logger.Error(err))
	}

	if p.warmer == nil {
		return
	}
	if err := p.warmer.EnqueueLibraryWarmup(ctx, username); err != nil {
		p.log.Warn("failed to enqueue library warm-up", logger.String("username", username), logger.Error(err))
	}
}
