package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"
)

type friendRepoStub struct {
	createFn               func(context.Context, *models.Friendship) error
	getRequestFn           func(context.Context, uint, uint) (*models.Friendship, error)
	getPendingRequestFn    func(context.Context, uint, uint) (*models.Friendship, error)
	getAcceptedBetweenFn   func(context.Context, uint, uint) (*models.Friendship, error)
	getFriendsFn           func(context.Context, uint) ([]models.User, error)
	getPendingRequestersFn func(context.Context, uint) ([]models.User, error)
	getAcceptedFriendIDsFn func(context.Context, uint) ([]uint, error)
	updateStatusFn         func(context.Context, uint, models.FriendshipStatus) error
	deleteFn               func(context.Context, uint) error
}

func (s *friendRepoStub) Create(ctx context.Context, friendship *models.Friendship) error {
	return s.createFn(ctx, friendship)
}
func (s *friendRepoStub) GetRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error) {
	return s.getRequestFn(ctx, requesterID, targetID)
}
func (s *friendRepoStub) GetPendingRequest(ctx context.Context, requesterID, targetID uint) (*models.Friendship, error) {
	return s.getPendingRequestFn(ctx, requesterID, targetID)
}
func (s *friendRepoStub) GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	return s.getAcceptedBetweenFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) GetPendingRequesters(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getPendingRequestersFn(ctx, userID)
}
func (s *friendRepoStub) GetAcceptedFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getAcceptedFriendIDsFn(ctx, userID)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, friendshipID uint, status models.FriendshipStatus) error {
	return s.updateStatusFn(ctx, friendshipID, status)
}
func (s *friendRepoStub) Delete(ctx context.Context, friendshipID uint) error {
	return s.deleteFn(ctx, friendshipID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn:               func(context.Context, *models.Friendship) error { return nil },
		getRequestFn:           func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		getPendingRequestFn:    func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		getAcceptedBetweenFn:   func(context.Context, uint, uint) (*models.Friendship, error) { return nil, nil },
		getFriendsFn:           func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getPendingRequestersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getAcceptedFriendIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		updateStatusFn:         func(context.Context, uint, models.FriendshipStatus) error { return nil },
		deleteFn:               func(context.Context, uint) error { return nil },
	}
}

func TestFriendServiceSendFriendRequestSelf(t *testing.T) {
	svc := NewFriendService(noopFriendRepo())
	_, err := svc.SendFriendRequest(context.Background(), 3, 3)
	if err == nil {
		t.Fatal("expected conflict error")
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeConflict {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
}

func TestFriendServiceSendFriendRequestDuplicate(t *testing.T) {
	repo := noopFriendRepo()
	repo.getRequestFn = func(_ context.Context, requesterID, targetID uint) (*models.Friendship, error) {
		if requesterID == 1 && targetID == 2 {
			return &models.Friendship{ID: 7, UserID: 1, FriendID: 2, Status: models.FriendshipStatusAccepted}, nil
		}
		return nil, nil
	}

	svc := NewFriendService(repo)
	_, err := svc.SendFriendRequest(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeConflict {
		t.Fatalf("expected conflict app error, got %#v", err)
	}

	// The reverse direction is not blocked by the existing edge.
	if _, err := svc.SendFriendRequest(context.Background(), 2, 1); err != nil {
		t.Fatalf("reverse-direction request should succeed, got %v", err)
	}
}

func TestFriendServiceSendFriendRequestCreatesPending(t *testing.T) {
	repo := noopFriendRepo()
	var created *models.Friendship
	repo.createFn = func(_ context.Context, f *models.Friendship) error {
		created = f
		return nil
	}

	svc := NewFriendService(repo)
	f, err := svc.SendFriendRequest(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || f.UserID != 1 || f.FriendID != 2 || f.Status != models.FriendshipStatusPending {
		t.Fatalf("unexpected friendship %#v", f)
	}
}

func TestFriendServiceAcceptRequiresPendingFromFriend(t *testing.T) {
	repo := noopFriendRepo()
	svc := NewFriendService(repo)

	err := svc.AcceptFriendRequest(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found app error, got %#v", err)
	}

	// The pending edge must run friend -> user.
	var lookedUp [2]uint
	repo.getPendingRequestFn = func(_ context.Context, requesterID, targetID uint) (*models.Friendship, error) {
		lookedUp = [2]uint{requesterID, targetID}
		return &models.Friendship{ID: 4, UserID: requesterID, FriendID: targetID, Status: models.FriendshipStatusPending}, nil
	}
	var updatedTo models.FriendshipStatus
	repo.updateStatusFn = func(_ context.Context, _ uint, status models.FriendshipStatus) error {
		updatedTo = status
		return nil
	}

	if err := svc.AcceptFriendRequest(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookedUp != [2]uint{2, 1} {
		t.Fatalf("expected lookup of edge 2->1, got %v", lookedUp)
	}
	if updatedTo != models.FriendshipStatusAccepted {
		t.Fatalf("expected status accepted, got %q", updatedTo)
	}
}

func TestFriendServiceRejectDeletesPending(t *testing.T) {
	repo := noopFriendRepo()
	repo.getPendingRequestFn = func(context.Context, uint, uint) (*models.Friendship, error) {
		return &models.Friendship{ID: 9, Status: models.FriendshipStatusPending}, nil
	}
	var deleted uint
	repo.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}

	svc := NewFriendService(repo)
	if err := svc.RejectFriendRequest(context.Background(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 9 {
		t.Fatalf("expected delete of friendship 9, got %d", deleted)
	}
}

func TestFriendServiceRemoveFriendMissing(t *testing.T) {
	svc := NewFriendService(noopFriendRepo())
	err := svc.RemoveFriend(context.Background(), 1, 2)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not-found app error, got %#v", err)
	}
}
