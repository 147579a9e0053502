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

func TestPostRepository_Integration(t *testing.T) {
	repo := NewPostRepository(testDB)
	ctx := context.Background()

	ts := time.Now().UnixNano()
	u1 := &models.User{ExternalID: fmt.Sprintf("p1_%d", ts), Name: "Poster One"}
	u2 := &models.User{ExternalID: fmt.Sprintf("p2_%d", ts), Name: "Poster Two"}
	require.NoError(t, testDB.Create(u1).Error)
	require.NoError(t, testDB.Create(u2).Error)

	mediaURL := "https://cdn.example.com/pic.jpg"
	mediaType := models.MediaTypeImage

	t.Run("Create and GetByID", func(t *testing.T) {
		post := &models.Post{
			UserID:    u1.ID,
			Content:   "first post",
			MediaURL:  &mediaURL,
			MediaType: &mediaType,
		}
		require.NoError(t, repo.Create(ctx, post))
		require.NotZero(t, post.ID)

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "first post", got.Content)
		require.NotNil(t, got.MediaURL)
		assert.Equal(t, mediaURL, *got.MediaURL)
	})

	t.Run("ListByUser newest first", func(t *testing.T) {
		older := &models.Post{UserID: u1.ID, Content: "older", CreatedAt: time.Now().Add(-time.Hour)}
		require.NoError(t, testDB.Create(older).Error)

		posts, err := repo.ListByUser(ctx, u1.ID, 50, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(posts), 2)
		assert.Equal(t, "first post", posts[0].Content)
		assert.Equal(t, "older", posts[len(posts)-1].Content)
	})

	t.Run("ListByOwners", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Post{UserID: u2.ID, Content: "by two"}))

		posts, err := repo.ListByOwners(ctx, []uint{u1.ID, u2.ID}, 50, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(posts), 3)

		empty, err := repo.ListByOwners(ctx, nil, 50, 0)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Delete missing post not found", func(t *testing.T) {
		err := repo.Delete(ctx, 999999)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
