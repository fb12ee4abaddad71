package middleware

import (
	"cardtrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireAuth guards seller and buyer actions (create/update listings, cart,
// notifications, profile). The session must resolve to a parseable user id;
// a session blob without one is treated the same as no session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ViewerID(c) == uuid.Nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}
