package library

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/logger"
)

type spyWarmer struct {
	usernames []string
	err       error
}

func (s *spyWarmer) EnqueueLibraryWarmup(_ context.Context, username string) error {
	s.usernames = append(s.usernames, username)
	return s.err
}

func TestPurgeOnWrite(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(0)

	keys := []string{
		cache.LibraryEntriesKey,
		cache.LibraryEntryKey(1),
		cache.LibraryEntryKey(2),
		cache.SelfLibraryKey("", "wsmith"),
		cache.SelfLibraryKey("Widget", "wsmith"),
		cache.SelfLibraryKey("Widget", "jones"),
		cache.AccessControlListKey,
	}
	for _, key := range keys {
		require.NoError(t, store.Set(ctx, key, []byte("[]")))
	}

	warmer := &spyWarmer{err: errors.New("queue full")}
	NewPurgeOnWrite(store, warmer, logger.Nop()).EntriesWritten(ctx, "w.smith", 1)

	for _, key := range keys[:2] {
		_, err := store.Get(ctx, key)
		assert.True(t, errors.Is(err, cache.ErrMiss), key)
	}
	for _, key := range keys[3:5] {
		_, err := store.Get(ctx, key)
		assert.True(t, errors.Is(err, cache.ErrMiss), key)
	}
	for _, key := range []string{cache.LibraryEntryKey(2), cache.SelfLibraryKey("Widget", "jones"), cache.AccessControlListKey} {
		_, err := store.Get(ctx, key)
		assert.NoError(t, err, key)
	}

	assert.Equal(t, []string{"w.smith"}, warmer.usernames)
}

func TestKeepCached(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, cache.LibraryEntriesKey, []byte("[]")))

	KeepCached{}.EntriesWritten(ctx, "wsmith", 1, 2, 3)
	assert.Equal(t, 1, store.Len())
}
