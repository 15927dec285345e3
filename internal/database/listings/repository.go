// Package listings provides read access to catalog listings with the
// visibility rule the library relies on: a listing is visible to a profile
// when it is not deleted and is either enabled or owned by that profile.
package listings

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles listing database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new listings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// visibleTo selects the listings username may see.
func (r *Repository) visibleTo(ctx context.Context, username string) *gorm.DB {
	owned := r.db.Model(&entities.Profile{}).Select("id").Where("username = ?", username)
	return r.db.WithContext(ctx).
		Preload("ListingType").
		Where("listings.is_deleted = ?", false).
		Where(r.db.Where("listings.is_enabled = ?", true).Or("listings.owner_id IN (?)", owned))
}

// GetListingByID returns the listing if it exists and is visible to username.
func (r *Repository) GetListingByID(ctx context.Context, username string, id uint) (*entities.Listing, error) {
	var listing entities.Listing
	err := r.visibleTo(ctx, username).Where("listings.id = ?", id).First(&listing).Error
	if err != nil {
		return nil, database.Translate(err, fmt.Sprintf("get listing %d", id))
	}
	return &listing, nil
}

// ListVisible returns every listing visible to username, ordered by id.
func (r *Repository) ListVisible(ctx context.Context, username string) ([]entities.Listing, error) {
	var listings []entities.Listing
	if err := r.visibleTo(ctx, username).Order("listings.id ASC").Find(&listings).Error; err != nil {
		return nil, database.Translate(err, "list visible listings")
	}
	return listings, nil
}

// CreateListing inserts a listing, resolving the listing type by title.
// An empty typeTitle leaves the listing untyped.
func (r *Repository) CreateListing(ctx context.Context, listing *entities.Listing, typeTitle string) error {
	if typeTitle != "" {
		var lt entities.ListingType
		if err := r.db.WithContext(ctx).Where("title = ?", typeTitle).First(&lt).Error; err != nil {
			return database.Translate(err, "resolve listing type "+typeTitle)
		}
		listing.ListingTypeID = &lt.ID
		listing.ListingType = lt
	}

	// IsEnabled has a gorm default of true; a false value must be written explicitly.
	enabled := listing.IsEnabled
	if err := r.db.WithContext(ctx).Omit("ListingType").Create(listing).Error; err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	if !enabled {
		return r.SetEnabled(ctx, listing.ID, false)
	}
	return nil
}

// SetEnabled toggles whether a listing is publicly visible.
func (r *Repository) SetEnabled(ctx context.Context, id uint, enabled bool) error {
	return r.update(ctx, id, "is_enabled", enabled)
}

// MarkDeleted soft-deletes a listing. Bookmarks pointing at it disappear from reads.
func (r *Repository) MarkDeleted(ctx context.Context, id uint) error {
	return r.update(ctx, id, "is_deleted", true)
}

func (r *Repository) update(ctx context.Context, id uint, column string, value any) error {
	result := r.db.WithContext(ctx).Model(&entities.Listing{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("update listing %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update listing %d: %w", id, database.ErrNotFound)
	}
	return nil
}
