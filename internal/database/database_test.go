package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewQuietDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping(context.Background()))

	var types int64
	require.NoError(t, db.DB.Model(&entities.ListingType{}).Count(&types).Error)
	assert.Equal(t, int64(len(defaultListingTypes)), types)

	t.Run("seeding is idempotent", func(t *testing.T) {
		require.NoError(t, db.seed())

		var controls int64
		require.NoError(t, db.DB.Model(&entities.AccessControl{}).Count(&controls).Error)
		assert.Equal(t, int64(len(defaultAccessControls)), controls)
	})
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, Translate(nil, "noop"))

	err := Translate(gorm.ErrRecordNotFound, "get thing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "get thing: record not found", err.Error())

	boom := fmt.Errorf("disk full")
	err = Translate(boom, "save thing")
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, boom))
}
