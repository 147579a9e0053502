package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Integration(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	ts := time.Now().UnixNano()
	extID := fmt.Sprintf("auth0|u_%d", ts)

	t.Run("Create and GetByID", func(t *testing.T) {
		user := &models.User{ExternalID: extID, Name: "Ada"}
		err := repo.Create(ctx, user)
		require.NoError(t, err)
		require.NotZero(t, user.ID)

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, extID, got.ExternalID)
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("Create duplicate external id conflicts", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{ExternalID: extID, Name: "Imposter"})
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("GetByExternalID returns nil on miss", func(t *testing.T) {
		got, err := repo.GetByExternalID(ctx, fmt.Sprintf("nope_%d", ts))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Update", func(t *testing.T) {
		user, err := repo.GetByExternalID(ctx, extID)
		require.NoError(t, err)
		require.NotNil(t, user)

		user.Name = "Ada Lovelace"
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.Name)
	})

	t.Run("Search is case-insensitive substring", func(t *testing.T) {
		users, err := repo.Search(ctx, "lovelace")
		require.NoError(t, err)
		require.NotEmpty(t, users)
		assert.Equal(t, extID, users[0].ExternalID)

		none, err := repo.Search(ctx, "zzz-no-such-name")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete", func(t *testing.T) {
		user, err := repo.GetByExternalID(ctx, extID)
		require.NoError(t, err)
		require.NotNil(t, user)

		require.NoError(t, repo.Delete(ctx, user.ID))

		_, err = repo.GetByID(ctx, user.ID)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)

		err = repo.Delete(ctx, user.ID)
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
