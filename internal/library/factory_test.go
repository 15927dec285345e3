package library

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/dbtest"
	"github.com/mrlokans/catalog/internal/logger"
)

func TestEntryFactory_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	factory := env.factory()

	owner := env.fx.Profile("wsmith")
	listing := env.fx.Listing("Air Mail", "Web Application")

	entry, err := factory.Create(ctx, "wsmith", listing.ID, dbtest.Str("Work"))
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, listing.ID, entry.Listing.ID)
	assert.Equal(t, owner.ID, entry.Owner.ID)
	assert.True(t, entry.InFolder("Work"))

	stored := env.entry(t, entry.ID)
	assert.Equal(t, owner.ID, stored.OwnerID)
	assert.True(t, stored.InFolder("Work"))

	assert.Equal(t, []uint{entry.ID}, env.recorder.created)
	assert.Equal(t, 0, env.store.Len(), "creating an entry does not touch the cache")
}

func TestEntryFactory_CreateWithoutFolder(t *testing.T) {
	env := newTestEnv(t)
	env.fx.Profile("wsmith")
	listing := env.fx.Listing("Air Mail", "Widget")

	entry, err := env.factory().Create(context.Background(), "wsmith", listing.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, env.entry(t, entry.ID).Folder)
}

func TestEntryFactory_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	factory := env.factory()

	owner := env.fx.Profile("wsmith")
	env.fx.Profile("jones")
	listing := env.fx.Listing("Air Mail", "Widget")
	private := env.fx.Listing("Draft", "Widget", dbtest.Disabled(), dbtest.OwnedBy(owner))

	tests := []struct {
		name      string
		username  string
		listingID uint
		missing   []string
	}{
		{"missing listing", "wsmith", 9999, []string{"listing 9999"}},
		{"missing profile", "ghost", listing.ID, []string{"profile ghost"}},
		{"both missing", "ghost", 9999, []string{"listing 9999", "profile ghost"}},
		{"listing invisible to user", "jones", private.ID, []string{fmt.Sprintf("listing %d", private.ID)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := factory.Create(ctx, tt.username, tt.listingID, nil)
			assert.Nil(t, entry)

			var notFound *NotFoundError
			require.True(t, errors.As(err, &notFound))
			assert.Equal(t, tt.missing, notFound.Missing)
			assert.True(t, errors.Is(err, database.ErrNotFound))
		})
	}

	t.Run("owner sees own disabled listing", func(t *testing.T) {
		_, err := factory.Create(ctx, "wsmith", private.ID, nil)
		assert.NoError(t, err)
	})

	assert.Len(t, env.recorder.created, 1)
}

func TestEntryFactory_PurgeOnWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	warmer := &spyWarmer{}
	factory := env.factory(WithInvalidator(NewPurgeOnWrite(env.store, warmer, logger.Nop())))
	rc := env.readCache()

	owner := env.fx.Profile("wsmith")
	env.fx.Entry(owner, env.fx.Listing("Air Mail", "Widget"), "")
	clock := env.fx.Listing("Clock", "Widget")

	before, err := rc.GetSelfLibrary(ctx, "wsmith", "", "")
	require.NoError(t, err)
	require.Len(t, before, 1)
	_, err = rc.GetAll(ctx)
	require.NoError(t, err)

	_, err = factory.Create(ctx, "wsmith", clock.ID, nil)
	require.NoError(t, err)

	after, err := rc.GetSelfLibrary(ctx, "wsmith", "", "")
	require.NoError(t, err)
	assert.Len(t, after, 2)

	all, err := rc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Equal(t, []string{"wsmith"}, warmer.usernames)
}
