package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionConfig for the Redis-backed session written by the external auth
// system. This backend only reads sessions; it never issues them.
type SessionConfig struct {
	Secret            string
	RedisURL          string
	AllowCrossSiteDev bool
	IsProduction      bool
}

const (
	sessionCookieName = "card.sid"
	sessionPrefix     = "session:"
	sessionMaxAge     = 24 * time.Hour
)

// SessionUser is the shape the auth system stores under "user".
type SessionUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Region   string `json:"region"`
}

// Session returns a Fiber middleware that loads the session from Redis and
// refreshes its TTL on use. Cookie "card.sid", Redis key "session:<id>".
func Session(cfg SessionConfig) (fiber.Handler, *redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opt)

	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(sessionCookieName)
		// Cookie may be "s:id" or "s:id.signature"; use first part as id
		if strings.HasPrefix(sessionID, "s:") {
			parts := strings.SplitN(sessionID[2:], ".", 2)
			sessionID = parts[0]
		}

		var data map[string]interface{}
		if sessionID != "" {
			b, err := rdb.Get(context.Background(), sessionPrefix+sessionID).Bytes()
			if err == nil {
				_ = json.Unmarshal(b, &data)
			}
		}
		if data == nil {
			data = make(map[string]interface{})
		}

		c.Locals("session_data", data)
		if u, ok := data["user"]; ok {
			c.Locals("user", u)
		} else {
			c.Locals("user", nil)
		}
		c.Locals("session_id", sessionID)

		if err := c.Next(); err != nil {
			return err
		}

		// Refresh TTL for live sessions
		if sessionID != "" && len(data) > 0 {
			b, _ := json.Marshal(data)
			rdb.Set(context.Background(), sessionPrefix+sessionID, b, sessionMaxAge)
		}
		return nil
	}, rdb, nil
}

// ViewerID returns the authenticated viewer's id, or uuid.Nil for anonymous
// requests.
func ViewerID(c *fiber.Ctx) uuid.UUID {
	user, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return uuid.Nil
	}
	idStr, _ := user["user_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil
	}
	return id
}
