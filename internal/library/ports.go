package library

import (
	"context"

	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/entities"
)

// Every lookup below reports an absent or invisible record with an error
// wrapping database.ErrNotFound.

type ListingFinder interface {
	// GetListingByID applies the listing visibility rule for username.
	GetListingByID(ctx context.Context, username string, id uint) (*entities.Listing, error)
}

type ProfileFinder interface {
	GetProfile(ctx context.Context, username string) (*entities.Profile, error)
}

type NotificationStore interface {
	GetNotificationByID(ctx context.Context, username string, id uint) (*entities.Notification, error)
	DismissNotification(ctx context.Context, notification *entities.Notification, username string) error
}

type EntryStore interface {
	Create(ctx context.Context, entry *entities.LibraryEntry) error
	ListActive(ctx context.Context) ([]entities.LibraryEntry, error)
	GetActiveByID(ctx context.Context, id uint) (*entities.LibraryEntry, error)
	ListSelf(ctx context.Context, username string, filter librarydb.SelfFilter) ([]entities.LibraryEntry, error)
	// ApplyUpdates writes every update or none of them. Only entries owned
	// by username can be updated.
	ApplyUpdates(ctx context.Context, username string, updates []entities.LibraryEntryUpdate) error
}

// Recorder receives the audit trail of library writes. Calls must not block.
type Recorder interface {
	RecordBookmarkCreate(username string, entry *entities.LibraryEntry)
	RecordBookmarkImport(username string, notificationID uint, requested, imported int, problems []string)
	RecordLibraryUpdate(username string, entries int, problems []string, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordBookmarkCreate(string, *entities.LibraryEntry)   {}
func (nopRecorder) RecordBookmarkImport(string, uint, int, int, []string) {}
func (nopRecorder) RecordLibraryUpdate(string, int, []string, error)      {}
