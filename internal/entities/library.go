package entities

import "time"

// Profile is the catalog user. Username is the identity used throughout
// the library API and, after sanitization, in cache keys.
type Profile struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"uniqueIndex;size:100" json:"username"`
	DisplayName    string     `gorm:"size:255" json:"display_name,omitempty"`
	TokenHash      string     `gorm:"index;size:64" json:"-"` // SHA-256 of the API token
	TokenCreatedAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// LibraryEntry is a profile's bookmark of one listing, optionally filed
// under a folder. A nil Folder means the bookmark is not in any folder.
type LibraryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"index" json:"listing_id"`
	Listing   Listing   `gorm:"foreignKey:ListingID" json:"listing"`
	OwnerID   uint      `gorm:"index" json:"owner_id"`
	Owner     Profile   `gorm:"foreignKey:OwnerID" json:"owner"`
	Folder    *string   `gorm:"index;size:255" json:"folder"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InFolder reports whether the entry is filed under folder.
func (e LibraryEntry) InFolder(folder string) bool {
	return e.Folder != nil && *e.Folder == folder
}

func (Profile) TableName() string {
	return "profiles"
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}

// LibraryEntryUpdate moves an existing entry to a folder and/or listing.
type LibraryEntryUpdate struct {
	EntryID   uint
	ListingID uint
	Folder    *string
}
