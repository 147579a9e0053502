package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// CommentService provides comment and reply business logic. Comments are
// flat with one reply level: a reply's parent is always a top-level comment.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// AddCommentRequest carries the fields accepted on comment creation.
type AddCommentRequest struct {
	UserID  uint   `json:"user_id"`
	Content string `json:"content"`
}

// AddComment creates a top-level comment on the post. Neither the post nor
// the author is checked for existence.
func (s *CommentService) AddComment(ctx context.Context, postID uint, req AddCommentRequest) (*models.Comment, error) {
	if req.UserID == 0 {
		return nil, models.NewValidationError("user_id is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("content is required")
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  req.UserID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// AddReply creates a reply under the given comment, on the same post.
func (s *CommentService) AddReply(ctx context.Context, postID, parentID uint, req AddCommentRequest) (*models.Comment, error) {
	if req.UserID == 0 {
		return nil, models.NewValidationError("user_id is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("content is required")
	}

	comment := &models.Comment{
		PostID:          postID,
		UserID:          req.UserID,
		ParentCommentID: &parentID,
		Content:         req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListCommentsForPost returns every comment on the post, replies included,
// oldest first. The list is flat; threading is left to the consumer.
func (s *CommentService) ListCommentsForPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// ListRepliesForComment returns the comment's replies, oldest first.
func (s *CommentService) ListRepliesForComment(ctx context.Context, commentID uint, limit, offset int) ([]models.Comment, error) {
	return s.commentRepo.ListByParent(ctx, commentID, limit, offset)
}

// DeleteComment removes the comment. Its replies stay behind.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	return s.commentRepo.Delete(ctx, id)
}
