package server

import (
	"errors"
	"strconv"
	"strings"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed skip/limit query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts skip and limit query parameters with the given
// default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("skip", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
func humanizeParam(param string) string {
	switch param {
	case "id":
		return "ID"
	case "friendId":
		return "friend ID"
	default:
		return param
	}
}

// respondServiceError maps a service-layer error onto its HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// timelineBody is the optional JSON body accepted by the timeline endpoint.
type timelineBody struct {
	FriendIDs []uint `json:"friend_ids"`
}

// parseFriendIDs reads the caller-supplied friend-id list for the timeline:
// a comma-separated friend_ids query parameter, or a JSON body with a
// friend_ids array. An absent list is an empty timeline filter, not an error.
func parseFriendIDs(c *fiber.Ctx) ([]uint, error) {
	if raw := c.Query("friend_ids"); raw != "" {
		parts := strings.Split(raw, ",")
		ids := make([]uint, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			id, err := strconv.ParseUint(p, 10, 32)
			if err != nil {
				return nil, models.NewValidationError("friend_ids must be a comma-separated list of ids")
			}
			ids = append(ids, uint(id))
		}
		return ids, nil
	}

	if len(c.Body()) > 0 {
		var body timelineBody
		if err := c.BodyParser(&body); err != nil {
			return nil, models.NewValidationError("Invalid request body")
		}
		return body.FriendIDs, nil
	}

	return nil, nil
}
