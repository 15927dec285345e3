package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// EntryFactory creates single bookmarks.
type EntryFactory struct {
	listings    ListingFinder
	profiles    ProfileFinder
	entries     EntryStore
	recorder    Recorder
	invalidator Invalidator
	log         logger.Logger
}

func NewEntryFactory(listings ListingFinder, profiles ProfileFinder, entries EntryStore, log logger.Logger, opts ...Option) *EntryFactory {
	o := buildOptions(opts)
	return &EntryFactory{
		listings:    listings,
		profiles:    profiles,
		entries:     entries,
		recorder:    o.recorder,
		invalidator: o.invalidator,
		log:         log,
	}
}

// Create bookmarks listingID for username, optionally inside folder. The
// listing must be visible to username and the profile must exist; otherwise
// a *NotFoundError names whichever is missing.
func (f *EntryFactory) Create(ctx context.Context, username string, listingID uint, folder *string) (*entities.LibraryEntry, error) {
	entry, err := f.create(ctx, username, listingID, folder)
	if err != nil {
		return nil, err
	}
	f.recorder.RecordBookmarkCreate(username, entry)
	f.invalidator.EntriesWritten(ctx, username, entry.ID)
	return entry, nil
}

// create persists the entry without notifying the recorder or the invalidator.
func (f *EntryFactory) create(ctx context.Context, username string, listingID uint, folder *string) (*entities.LibraryEntry, error) {
	var missing []string

	listing, err := f.listings.GetListingByID(ctx, username, listingID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		missing = append(missing, fmt.Sprintf("listing %d", listingID))
	case err != nil:
		return nil, fmt.Errorf("failed to resolve listing %d: %w", listingID, err)
	}

	owner, err := f.profiles.GetProfile(ctx, username)
	switch {
	case errors.Is(err, database.ErrNotFound):
		missing = append(missing, "profile "+username)
	case err != nil:
		return nil, fmt.Errorf("failed to resolve profile %s: %w", username, err)
	}

	if len(missing) > 0 {
		return nil, &NotFoundError{Resource: "bookmark", Missing: missing}
	}

	f.log.Debug("adding bookmark",
		logger.String("username", username),
		logger.String("listing", listing.Title),
		logger.Uint("listing_id", listing.ID))

	entry := &entities.LibraryEntry{
		ListingID: listing.ID,
		Listing:   *listing,
		OwnerID:   owner.ID,
		Owner:     *owner,
		Folder:    folder,
	}
	if err := f.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
