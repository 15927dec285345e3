// Package accesscontrol provides database operations for access control levels.
package accesscontrol

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles access control database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new access control repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns every access control level ordered by ID.
func (r *Repository) GetAll(ctx context.Context) ([]entities.AccessControl, error) {
	var controls []entities.AccessControl
	err := r.db.WithContext(ctx).Order("id ASC").Find(&controls).Error
	if err != nil {
		return nil, database.Translate(err, "list access controls")
	}
	return controls, nil
}

// GetByTitle returns the access control with the exact title.
func (r *Repository) GetByTitle(ctx context.Context, title string) (*entities.AccessControl, error) {
	var control entities.AccessControl
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&control).Error
	if err != nil {
		return nil, database.Translate(err, "get access control "+title)
	}
	return &control, nil
}
