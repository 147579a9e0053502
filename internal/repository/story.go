package repository

import (
	"context"
	"errors"
	"time"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// StoryRepository defines the interface for story data operations.
//
// Expired stories are filtered at read time, never deleted. A story whose
// ExpiresAt has passed simply stops appearing in list results.
type StoryRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Story, error)
	Create(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id uint) error
	ListActiveByOwners(ctx context.Context, ownerIDs []uint, limit, offset int) ([]models.Story, error)
}

// storyRepository implements StoryRepository
type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) GetByID(ctx context.Context, id uint) (*models.Story, error) {
	defer observability.TrackQuery("get_by_id", "stories")()
	var story models.Story
	if err := r.db.WithContext(ctx).First(&story, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Story", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &story, nil
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	defer observability.TrackQuery("create", "stories")()
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *storyRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "stories")()
	res := r.db.WithContext(ctx).Delete(&models.Story{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Story", id)
	}
	return nil
}

// ListActiveByOwners returns unexpired stories by any of the given owners,
// newest first.
func (r *storyRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uint, limit, offset int) ([]models.Story, error) {
	defer observability.TrackQuery("list_active_by_owners", "stories")()
	if len(ownerIDs) == 0 {
		return []models.Story{}, nil
	}
	var stories []models.Story
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND expires_at > ?", ownerIDs, time.Now().UTC()).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&stories).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stories, nil
}
