package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Credentials is the single shared Basic-auth credential gating the API.
// It is not a per-user credential system.
type Credentials struct {
	User     string
	Password string
}

// Match reports whether the supplied pair equals the configured credential,
// in constant time.
func (cr Credentials) Match(user, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cr.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cr.Password)) == 1
	return userOK && passOK
}

// BasicAuth returns a middleware enforcing the shared credential on every
// request. Failures carry a WWW-Authenticate challenge.
func BasicAuth(cr Credentials) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok || !cr.Match(user, password) {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="restricted"`)
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid credentials"))
		}
		return c.Next()
	}
}

func parseBasicAuth(header string) (user, password string, ok bool) {
	const prefix = "Basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	user, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return user, password, true
}
