package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// GET /health/json
func (h *Handlers) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.DB == nil {
		dbStatus = "down"
	} else if sqlDB, err := h.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
	}

	redisStatus := "ok"
	if h.Rdb == nil || h.Rdb.Ping(ctx).Err() != nil {
		redisStatus = "down"
	}

	status := 200
	if dbStatus != "ok" || redisStatus != "ok" {
		status = 503
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   dbStatus == "ok" && redisStatus == "ok",
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
