// Package dbtest opens throwaway catalog databases and seeds fixtures for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Open creates a migrated and seeded database in a temp dir, closed on cleanup.
func Open(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewQuietDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// Fixtures creates rows directly through gorm, bypassing repositories.
type Fixtures struct {
	t  *testing.T
	db *gorm.DB
}

func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) Profile(username string) *entities.Profile {
	f.t.Helper()
	profile := &entities.Profile{Username: username, DisplayName: username}
	require.NoError(f.t, f.db.Create(profile).Error)
	return profile
}

// ListingOption tweaks a listing before it is stored.
type ListingOption func(*entities.Listing)

func Disabled() ListingOption {
	return func(l *entities.Listing) { l.IsEnabled = false }
}

func Deleted() ListingOption {
	return func(l *entities.Listing) { l.IsDeleted = true }
}

func OwnedBy(p *entities.Profile) ListingOption {
	return func(l *entities.Listing) { l.OwnerID = p.ID }
}

// Listing creates an enabled, non-deleted listing of the given type title.
func (f *Fixtures) Listing(title, typeTitle string, opts ...ListingOption) *entities.Listing {
	f.t.Helper()

	var lt entities.ListingType
	require.NoError(f.t, f.db.Where("title = ?", typeTitle).First(&lt).Error)

	listing := &entities.Listing{
		Title:         title,
		ListingTypeID: &lt.ID,
		IsEnabled:     true,
	}
	for _, opt := range opts {
		opt(listing)
	}

	require.NoError(f.t, f.db.Omit("ListingType").Create(listing).Error)
	// Zero values are replaced by column defaults on insert.
	require.NoError(f.t, f.db.Model(listing).Updates(map[string]any{
		"is_enabled": listing.IsEnabled,
		"is_deleted": listing.IsDeleted,
	}).Error)

	listing.ListingType = lt
	return listing
}

// Entry bookmarks listing for owner. An empty folder means no folder.
func (f *Fixtures) Entry(owner *entities.Profile, listing *entities.Listing, folder string) *entities.LibraryEntry {
	f.t.Helper()
	entry := &entities.LibraryEntry{
		ListingID: listing.ID,
		OwnerID:   owner.ID,
	}
	if folder != "" {
		entry.Folder = &folder
	}
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(entry).Error)
	return entry
}

// Notification stores a notification addressed to target.
func (f *Fixtures) Notification(target *entities.Profile, notificationType string, peer *entities.PeerPayload) *entities.Notification {
	f.t.Helper()
	raw, err := entities.EncodePeer(peer)
	require.NoError(f.t, err)

	n := &entities.Notification{
		Type:            notificationType,
		Message:         "fixture",
		TargetProfileID: target.ID,
		Peer:            raw,
	}
	n.ExpiresAt = n.ExpiresAt.AddDate(3000, 0, 0)
	require.NoError(f.t, f.db.Create(n).Error)
	return n
}

// SetRawPeer overwrites the stored peer document of a notification.
func (f *Fixtures) SetRawPeer(n *entities.Notification, raw string) {
	f.t.Helper()
	require.NoError(f.t, f.db.Model(&entities.Notification{}).Where("id = ?", n.ID).Update("peer", raw).Error)
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

// Uint returns a pointer to v.
func Uint(v uint) *uint {
	return &v
}
