package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
//
// The friendship graph is directed: every operation below is defined in
// terms of who sent the request, and the sent/received sides are not
// interchangeable.
type FriendService struct {
	friendRepo repository.FriendRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo}
}

// SendFriendRequest creates a pending edge from userID to friendID.
//
// Only the requester->target direction is checked for duplicates; a request
// in the opposite direction does not block this one. The target id is not
// checked against the users table.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID, friendID uint) (*models.Friendship, error) {
	if userID == friendID {
		observability.FriendRequestsTotal.WithLabelValues("send", "rejected").Inc()
		return nil, models.NewConflictError("Cannot send a friend request to yourself")
	}

	existing, err := s.friendRepo.GetRequest(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.FriendRequestsTotal.WithLabelValues("send", "duplicate").Inc()
		return nil, models.NewConflictError("A friend request to this user already exists")
	}

	friendship := &models.Friendship{
		UserID:   userID,
		FriendID: friendID,
		Status:   models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	observability.FriendRequestsTotal.WithLabelValues("send", "created").Inc()
	return friendship, nil
}

// AcceptFriendRequest accepts the pending request friendID sent to userID.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, userID, friendID uint) error {
	friendship, err := s.friendRepo.GetPendingRequest(ctx, friendID, userID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return models.NewNotFoundError("Friend request", friendID)
	}

	if err := s.friendRepo.UpdateStatus(ctx, friendship.ID, models.FriendshipStatusAccepted); err != nil {
		return err
	}
	observability.FriendRequestsTotal.WithLabelValues("accept", "ok").Inc()
	return nil
}

// RejectFriendRequest deletes the pending request friendID sent to userID.
func (s *FriendService) RejectFriendRequest(ctx context.Context, userID, friendID uint) error {
	friendship, err := s.friendRepo.GetPendingRequest(ctx, friendID, userID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return models.NewNotFoundError("Friend request", friendID)
	}

	if err := s.friendRepo.Delete(ctx, friendship.ID); err != nil {
		return err
	}
	observability.FriendRequestsTotal.WithLabelValues("reject", "ok").Inc()
	return nil
}

// RemoveFriend deletes the accepted edge between the two users, whichever
// direction it was created in.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	friendship, err := s.friendRepo.GetAcceptedBetween(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return models.NewNotFoundError("Friendship", friendID)
	}

	if err := s.friendRepo.Delete(ctx, friendship.ID); err != nil {
		return err
	}
	observability.FriendRequestsTotal.WithLabelValues("remove", "ok").Inc()
	return nil
}

// GetFriends returns the users the given user has an accepted outgoing edge
// to. Accepting someone's request does not put them in this list.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// GetPendingRequests returns the users waiting on an answer from userID.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetPendingRequesters(ctx, userID)
}
