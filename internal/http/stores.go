package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/library"
)

// This file consolidates the service interfaces used by HTTP controllers.
// Each controller depends only on what it calls.

// LibraryReader serves cached library reads.
type LibraryReader interface {
	GetAll(ctx context.Context) ([]entities.LibraryEntry, error)
	GetByID(ctx context.Context, id uint) (*entities.LibraryEntry, error)
	GetSelfLibrary(ctx context.Context, username, listingType, folder string) ([]entities.LibraryEntry, error)
}

// BookmarkCreator bookmarks a single listing.
type BookmarkCreator interface {
	Create(ctx context.Context, username string, listingID uint, folder *string) (*entities.LibraryEntry, error)
}

// BookmarkImporter consumes a peer bookmark notification.
type BookmarkImporter interface {
	Import(ctx context.Context, username string, notificationID uint) (library.ImportOutcome, error)
}

// LibraryReorganizer applies a batch of folder assignments.
type LibraryReorganizer interface {
	Apply(ctx context.Context, username string, batch []library.FolderAssignment) (library.ReorganizeOutcome, error)
}

// ListingBrowser lists the catalog listings visible to a user.
type ListingBrowser interface {
	ListVisible(ctx context.Context, username string) ([]entities.Listing, error)
	GetListingByID(ctx context.Context, username string, id uint) (*entities.Listing, error)
}

// AccessControlReader serves cached access control levels.
type AccessControlReader interface {
	GetAll(ctx context.Context) ([]entities.AccessControl, error)
	GetByTitle(ctx context.Context, title string) (*entities.AccessControl, error)
}

// AuditReader lists a user's audit trail.
type AuditReader interface {
	GetEvents(username string, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, username string) ([]entities.AuditEvent, error)
}

// TaskQueue enqueues library warm-ups and reports task status.
type TaskQueue interface {
	AddLibraryWarmup(ctx context.Context, username string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger checks connectivity of a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}
