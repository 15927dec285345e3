// Package library provides database operations for library entries (bookmarks).
//
// Reads always hide entries whose listing is soft-deleted; the entries
// themselves are never deleted when a listing goes away.
//
// # Usage
//
//	repo := library.NewRepository(db)
//	entries, err := repo.ListSelf(ctx, "wsmith", library.SelfFilter{ListingType: "Widget"})
package library

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// SelfFilter narrows a profile's library. Empty fields don't filter.
type SelfFilter struct {
	ListingType string
	Folder      string
}

// Repository handles all library entry database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// withListing joins the entry's listing and hides soft-deleted listings.
func (r *Repository) withListing(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.LibraryEntry{}).
		Select("library_entries.*").
		Joins("JOIN listings ON listings.id = library_entries.listing_id").
		Where("listings.is_deleted = ?", false).
		Preload("Listing.ListingType").
		Preload("Owner")
}

// ListActive returns every entry whose listing is not deleted.
func (r *Repository) ListActive(ctx context.Context) ([]entities.LibraryEntry, error) {
	var entries []entities.LibraryEntry
	err := r.withListing(ctx).Order("library_entries.id ASC").Find(&entries).Error
	if err != nil {
		return nil, database.Translate(err, "list library entries")
	}
	return entries, nil
}

// GetActiveByID returns the entry if its listing is not deleted.
func (r *Repository) GetActiveByID(ctx context.Context, id uint) (*entities.LibraryEntry, error) {
	var entry entities.LibraryEntry
	err := r.withListing(ctx).Where("library_entries.id = ?", id).First(&entry).Error
	if err != nil {
		return nil, database.Translate(err, fmt.Sprintf("get library entry %d", id))
	}
	return &entry, nil
}

// ListSelf returns entries owned by username whose listing is enabled and not deleted.
func (r *Repository) ListSelf(ctx context.Context, username string, filter SelfFilter) ([]entities.LibraryEntry, error) {
	query := r.withListing(ctx).
		Joins("JOIN profiles ON profiles.id = library_entries.owner_id").
		Where("profiles.username = ?", username).
		Where("listings.is_enabled = ?", true)

	if filter.ListingType != "" {
		query = query.
			Joins("JOIN listing_types ON listing_types.id = listings.listing_type_id").
			Where("listing_types.title = ?", filter.ListingType)
	}
	if filter.Folder != "" {
		query = query.Where("library_entries.folder = ?", filter.Folder)
	}

	var entries []entities.LibraryEntry
	if err := query.Order("library_entries.id ASC").Find(&entries).Error; err != nil {
		return nil, database.Translate(err, "list self library")
	}
	return entries, nil
}

// GetByID returns the entry regardless of its listing's state.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.LibraryEntry, error) {
	var entry entities.LibraryEntry
	err := r.db.WithContext(ctx).Preload("Listing.ListingType").Preload("Owner").First(&entry, id).Error
	if err != nil {
		return nil, database.Translate(err, fmt.Sprintf("get library entry %d", id))
	}
	return &entry, nil
}

// Create persists a new entry. Listing and Owner must already be set so
// the returned entry carries its associations.
func (r *Repository) Create(ctx context.Context, entry *entities.LibraryEntry) error {
	err := r.db.WithContext(ctx).Omit("Listing", "Owner").Create(entry).Error
	if err != nil {
		return fmt.Errorf("create library entry: %w", err)
	}
	return nil
}

// MissingEntryError names an entry ApplyUpdates could not find among the
// caller's own entries.
type MissingEntryError struct {
	ID uint
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("library entry %d: %v", e.ID, database.ErrNotFound)
}

func (e *MissingEntryError) Unwrap() error {
	return database.ErrNotFound
}

// ApplyUpdates loads each of username's entries, overwrites its folder and
// listing and saves it. All updates share one transaction: if any entry is
// missing, nothing is written and a *MissingEntryError is returned.
// Entries owned by another profile count as missing.
func (r *Repository) ApplyUpdates(ctx context.Context, username string, updates []entities.LibraryEntryUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			var entry entities.LibraryEntry
			err := tx.Select("library_entries.*").
				Joins("JOIN profiles ON profiles.id = library_entries.owner_id").
				Where("library_entries.id = ? AND profiles.username = ?", u.EntryID, username).
				First(&entry).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &MissingEntryError{ID: u.EntryID}
				}
				return fmt.Errorf("load library entry %d: %w", u.EntryID, err)
			}

			entry.Folder = u.Folder
			entry.ListingID = u.ListingID

			if err := tx.Omit("Listing", "Owner").Save(&entry).Error; err != nil {
				return fmt.Errorf("save library entry %d: %w", u.EntryID, err)
			}
		}
		return nil
	})
}

// CountForProfile returns how many entries a profile owns, deleted listings included.
func (r *Repository) CountForProfile(ctx context.Context, profileID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.LibraryEntry{}).
		Where("owner_id = ?", profileID).
		Count(&count).Error
	return count, err
}
