package entities

import (
	"time"
)

// ListingType groups listings ("Web Application", "Widget", ...).
type ListingType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"uniqueIndex;size:50" json:"title"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Listing is a catalog item a profile can bookmark.
// Listings are soft-deleted via IsDeleted so existing bookmarks keep their reference.
type Listing struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Title         string      `gorm:"index;size:255" json:"title"`
	Description   string      `gorm:"type:text" json:"description,omitempty"`
	LaunchURL     string      `gorm:"size:2048" json:"launch_url,omitempty"`
	ListingTypeID *uint       `gorm:"index" json:"listing_type_id,omitempty"`
	ListingType   ListingType `gorm:"foreignKey:ListingTypeID" json:"listing_type"`
	OwnerID       uint        `gorm:"index" json:"owner_id"` // Profile that submitted the listing
	IsEnabled     bool        `gorm:"default:true" json:"is_enabled"`
	IsDeleted     bool        `gorm:"index;default:false" json:"is_deleted"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// AccessControl is a named clearance level (e.g. "UNCLASSIFIED").
type AccessControl struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;size:255" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (ListingType) TableName() string {
	return "listing_types"
}

func (Listing) TableName() string {
	return "listings"
}

func (AccessControl) TableName() string {
	return "access_controls"
}
