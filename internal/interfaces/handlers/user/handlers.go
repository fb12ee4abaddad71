package user

import (
	"strings"

	usersvc "cardtrade-backend/internal/application/user"
	"cardtrade-backend/internal/middleware"
	"cardtrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *usersvc.Service
}

// GET /api/v1/users/me
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	details, err := h.Service.GetUserDetails(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "User fetched successfully", details, nil)
}

type updateProfileBody struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Region       string `json:"region"`
}

// PUT /api/v1/users/update-profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var body updateProfileBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	changes, err := h.Service.UpdateProfile(c.Context(), middleware.ViewerID(c), usersvc.UpdateProfileInput{
		Name:         body.Name,
		Email:        body.Email,
		MobileNumber: body.MobileNumber,
		Region:       body.Region,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(changes) == 0 {
		return response.Success(c, "No changes were made", nil, nil)
	}
	return response.Success(c, "Profile updated successfully", fiber.Map{"changes": changes}, nil)
}

func writeServiceError(c *fiber.Ctx, err error) error {
	statusMap := map[string]int{
		"User not found":        404,
		"Invalid email":         400,
		"Invalid mobile number": 400,
	}
	if code, ok := statusMap[err.Error()]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	if strings.HasPrefix(err.Error(), "unknown ") {
		return response.Error(c, err.Error(), 400, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}
