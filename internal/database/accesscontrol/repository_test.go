package accesscontrol

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/dbtest"
)

func TestRepository(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "UNCLASSIFIED", all[0].Title)

	control, err := repo.GetByTitle(ctx, "TOP SECRET")
	require.NoError(t, err)
	assert.Equal(t, "TOP SECRET", control.Title)

	_, err = repo.GetByTitle(ctx, "COSMIC")
	assert.True(t, errors.Is(err, database.ErrNotFound))
}
