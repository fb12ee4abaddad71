package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig scopes browser access to the storefront deployments. Any origin
// ending with AllowedSuffix (e.g. ".cardtrade.shop" covers preview builds) is
// trusted; DevPassword lets a local frontend opt in via header.
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

// CORS allows credentialed requests from storefront origins. Session cookies
// require Allow-Credentials, which rules out a wildcard origin, so the
// matched origin is echoed back instead.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		// Same-origin and non-browser clients carry no Origin header
		if origin == "" {
			return c.Next()
		}
		// Local frontend preflights during development
		if c.Method() == fiber.MethodOptions && (strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")) {
			allowOrigin(c, origin)
			return c.SendStatus(fiber.StatusNoContent)
		}
		if cfg.AllowedSuffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(cfg.AllowedSuffix)) {
			allowOrigin(c, origin)
			return c.Next()
		}
		if cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword {
			allowOrigin(c, origin)
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error": fiber.Map{
				"message":    "Not allowed by CORS",
				"statusCode": 403,
				"details":    fiber.Map{},
			},
		})
	}
}

func allowOrigin(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Credentials", "true")
	c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type, dev-password")
}
