package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// StoryService provides story business logic. Stories expire 24 hours after
// creation; expiry is a read-side filter, nothing is deleted.
type StoryService struct {
	storyRepo  repository.StoryRepository
	friendRepo repository.FriendRepository
}

// NewStoryService returns a new StoryService.
func NewStoryService(storyRepo repository.StoryRepository, friendRepo repository.FriendRepository) *StoryService {
	return &StoryService{
		storyRepo:  storyRepo,
		friendRepo: friendRepo,
	}
}

// CreateStoryRequest carries the fields accepted on story creation.
type CreateStoryRequest struct {
	UserID    uint   `json:"user_id"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

// CreateStory creates a story. Expiry is stamped at creation and never
// recomputed.
func (s *StoryService) CreateStory(ctx context.Context, req CreateStoryRequest) (*models.Story, error) {
	if req.UserID == 0 {
		return nil, models.NewValidationError("user_id is required")
	}
	if strings.TrimSpace(req.MediaURL) == "" {
		return nil, models.NewValidationError("media_url is required")
	}
	if req.MediaType != models.MediaTypeImage && req.MediaType != models.MediaTypeVideo {
		return nil, models.NewValidationError("media_type must be image or video")
	}

	story := &models.Story{
		UserID:    req.UserID,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// ListVisibleStories returns unexpired stories by the user and by the
// targets of the user's accepted outgoing edges. Visibility follows the
// same direction as the friend list: users whose requests this user
// accepted are not included.
func (s *StoryService) ListVisibleStories(ctx context.Context, userID uint, limit, offset int) ([]models.Story, error) {
	friendIDs, err := s.friendRepo.GetAcceptedFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	owners := append([]uint{userID}, friendIDs...)
	return s.storyRepo.ListActiveByOwners(ctx, owners, limit, offset)
}

// DeleteStory removes the story before its natural expiry.
func (s *StoryService) DeleteStory(ctx context.Context, id uint) error {
	return s.storyRepo.Delete(ctx, id)
}
