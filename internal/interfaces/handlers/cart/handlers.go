package cart

import (
	cartsvc "cardtrade-backend/internal/application/cart"
	"cardtrade-backend/internal/middleware"
	"cardtrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *cartsvc.Service
}

// POST /api/v1/cart/add-item/:listingId
func (h *Handlers) AddItem(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return response.Error(c, "Invalid listing id", 400, nil)
	}
	if err := h.Service.AddItem(c.Context(), middleware.ViewerID(c), listingID); err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "Listing added to cart", nil, nil)
}

// DELETE /api/v1/cart/remove-item/:listingId
func (h *Handlers) RemoveItem(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return response.Error(c, "Invalid listing id", 400, nil)
	}
	if err := h.Service.RemoveItem(c.Context(), middleware.ViewerID(c), listingID); err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "Listing removed from cart", nil, nil)
}

// GET /api/v1/cart/get-items
func (h *Handlers) GetItems(c *fiber.Ctx) error {
	groups, err := h.Service.GetItems(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "Cart items fetched successfully", groups, nil)
}

func writeServiceError(c *fiber.Ctx, err error) error {
	statusMap := map[string]int{
		"Listing not found":                   404,
		"Cart not found":                      404,
		"Listing is not in cart":              404,
		"Cannot add your own listing to cart": 400,
		"Listing is already in cart":          400,
	}
	if code, ok := statusMap[err.Error()]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}
