package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// PostService provides post and timeline business logic.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePostRequest carries the fields accepted on post creation.
type CreatePostRequest struct {
	UserID    uint    `json:"user_id"`
	Content   string  `json:"content"`
	MediaURL  *string `json:"media_url"`
	MediaType *string `json:"media_type"`
}

// CreatePost creates a post. The author id is not checked against the
// users table.
func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if req.UserID == 0 {
		return nil, models.NewValidationError("user_id is required")
	}
	if strings.TrimSpace(req.Content) == "" && req.MediaURL == nil {
		return nil, models.NewValidationError("a post needs content or media")
	}
	if req.MediaType != nil &&
		*req.MediaType != models.MediaTypeImage && *req.MediaType != models.MediaTypeVideo {
		return nil, models.NewValidationError("media_type must be image or video")
	}

	post := &models.Post{
		UserID:    req.UserID,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns the post with the given id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes the post. Its comments stay behind.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

// ListPostsByUser returns a user's posts, newest first.
func (s *PostService) ListPostsByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID, limit, offset)
}

// ListTimeline returns posts by the user and the caller-supplied friend ids,
// newest first. The friend list is taken as given; no friendship lookup
// happens here.
func (s *PostService) ListTimeline(ctx context.Context, userID uint, friendIDs []uint, limit, offset int) ([]models.Post, error) {
	owners := make([]uint, 0, len(friendIDs)+1)
	owners = append(owners, userID)
	for _, id := range friendIDs {
		if id != userID {
			owners = append(owners, id)
		}
	}
	return s.postRepo.ListByOwners(ctx, owners, limit, offset)
}
