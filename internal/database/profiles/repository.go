// Package profiles provides database operations for catalog profiles.
//
// # Usage
//
//	repo := profiles.NewRepository(db)
//	profile, err := repo.GetProfile(ctx, "wsmith")
package profiles

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all profile database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new profiles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetProfile retrieves a profile by its exact (case-sensitive) username.
func (r *Repository) GetProfile(ctx context.Context, username string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error
	if err != nil {
		return nil, database.Translate(err, "get profile "+username)
	}
	return &profile, nil
}

// CreateProfile creates a new profile.
func (r *Repository) CreateProfile(ctx context.Context, username, displayName string) (*entities.Profile, error) {
	profile := &entities.Profile{
		Username:    username,
		DisplayName: displayName,
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("create profile %s: %w", username, err)
	}
	return profile, nil
}

// GetOrCreateProfile returns the existing profile or creates it.
func (r *Repository) GetOrCreateProfile(ctx context.Context, username string) (*entities.Profile, error) {
	profile := entities.Profile{Username: username, DisplayName: username}
	err := r.db.WithContext(ctx).Where(entities.Profile{Username: username}).FirstOrCreate(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("get or create profile %s: %w", username, err)
	}
	return &profile, nil
}

// GetProfileByTokenHash retrieves a profile by its hashed API token.
func (r *Repository) GetProfileByTokenHash(ctx context.Context, tokenHash string) (*entities.Profile, error) {
	if tokenHash == "" {
		return nil, fmt.Errorf("get profile by token: %w", database.ErrNotFound)
	}
	var profile entities.Profile
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&profile).Error
	if err != nil {
		return nil, database.Translate(err, "get profile by token")
	}
	return &profile, nil
}

// SetTokenHash stores a new API token hash for the profile.
func (r *Repository) SetTokenHash(ctx context.Context, profileID uint, tokenHash string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entities.Profile{}).Where("id = ?", profileID).Updates(map[string]any{
		"token_hash":       tokenHash,
		"token_created_at": now,
	})
	if result.Error != nil {
		return fmt.Errorf("save token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("save token: %w", database.ErrNotFound)
	}
	return nil
}
