package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /users/:id/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friends, err := s.friendService.GetFriends(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// GetPendingRequests handles GET /users/:id/friends/pending
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	requesters, err := s.friendService.GetPendingRequests(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(requesters)
}

// SendFriendRequest handles POST /users/:id/friends/:friendId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.SendFriendRequest(c.Context(), userID, friendID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(friendship)
}

// AcceptFriendRequest handles POST /users/:id/friends/:friendId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.friendService.AcceptFriendRequest(c.Context(), userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Friend request accepted"})
}

// RejectFriendRequest handles POST /users/:id/friends/:friendId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RejectFriendRequest(c.Context(), userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Friend request rejected"})
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.Context(), userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "message": "Friend removed"})
}
