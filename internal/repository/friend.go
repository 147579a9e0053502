package repository

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend-edge data operations.
//
// Edges are directed: (UserID, FriendID) means UserID sent the request.
// GetFriends and GetAcceptedFriendIDs follow outgoing edges only;
// GetAcceptedBetween matches either direction. Both views are part of the
// API contract.
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	GetRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error)
	GetPendingRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error)
	GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetPendingRequesters(ctx context.Context, userID uint) ([]models.User, error)
	GetAcceptedFriendIDs(ctx context.Context, userID uint) ([]uint, error)
	UpdateStatus(ctx context.Context, friendshipID uint, status models.FriendshipStatus) error
	Delete(ctx context.Context, friendshipID uint) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	defer observability.TrackQuery("create", "friendships")()
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetRequest finds the edge in the requester->target direction regardless of
// status. The reverse direction is deliberately not consulted.
func (r *friendRepository) GetRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error) {
	defer observability.TrackQuery("get_request", "friendships")()
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", requesterID, targetID).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// GetPendingRequest finds the pending edge in the requester->target direction.
func (r *friendRepository) GetPendingRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error) {
	defer observability.TrackQuery("get_pending_request", "friendships")()
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ? AND status = ?",
			requesterID, targetID, models.FriendshipStatusPending).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// GetAcceptedBetween finds an accepted edge between the two users in either
// direction.
func (r *friendRepository) GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	defer observability.TrackQuery("get_accepted_between", "friendships")()
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status = ?",
			userID1, userID2, userID2, userID1, models.FriendshipStatusAccepted).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// GetFriends returns the users the given user has an accepted outgoing edge
// to. Users whose request the given user accepted are not included.
func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	defer observability.TrackQuery("get_friends", "friendships")()
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON users.id = f.friend_id").
		Where("f.user_id = ? AND f.status = ?", userID, models.FriendshipStatusAccepted).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// GetPendingRequesters returns the users who sent the given user a pending
// request.
func (r *friendRepository) GetPendingRequesters(ctx context.Context, userID uint) ([]models.User, error) {
	defer observability.TrackQuery("get_pending_requesters", "friendships")()
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON users.id = f.user_id").
		Where("f.friend_id = ? AND f.status = ?", userID, models.FriendshipStatusPending).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// GetAcceptedFriendIDs returns the target ids of the user's accepted
// outgoing edges.
func (r *friendRepository) GetAcceptedFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	defer observability.TrackQuery("get_accepted_friend_ids", "friendships")()
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ? AND status = ?", userID, models.FriendshipStatusAccepted).
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *friendRepository) UpdateStatus(ctx context.Context, friendshipID uint, status models.FriendshipStatus) error {
	defer observability.TrackQuery("update_status", "friendships")()
	if err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ?", friendshipID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) Delete(ctx context.Context, friendshipID uint) error {
	defer observability.TrackQuery("delete", "friendships")()
	if err := r.db.WithContext(ctx).Delete(&models.Friendship{}, friendshipID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
