package notifications

import (
	notifsvc "cardtrade-backend/internal/application/notifications"
	"cardtrade-backend/internal/middleware"
	"cardtrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *notifsvc.Service
}

// GET /api/v1/notifications
func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.ListForUser(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Notifications fetched successfully", items, nil)
}

// PUT /api/v1/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid notification id", 400, nil)
	}
	if err := h.Service.MarkRead(c.Context(), middleware.ViewerID(c), notificationID); err != nil {
		if err.Error() == "Notification not found" {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Notification marked as read", nil, nil)
}
