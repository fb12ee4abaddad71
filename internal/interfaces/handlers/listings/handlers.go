package listings

import (
	"errors"
	"strings"

	listsvc "cardtrade-backend/internal/application/listings"
	"cardtrade-backend/internal/application/search"
	"cardtrade-backend/internal/middleware"
	"cardtrade-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
	Search  *search.Service
}

type listingBody struct {
	Title         string   `json:"title"`
	CardCondition string   `json:"card_condition"`
	CardType      string   `json:"card_type"`
	Rarity        string   `json:"rarity"`
	Price         float64  `json:"price"`
	Images        []string `json:"images"`
	Description   string   `json:"description"`
}

// POST /api/v1/listings/create-listing
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body listingBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	viewerID := middleware.ViewerID(c)

	listing, err := h.Service.CreateListing(c.Context(), viewerID, listsvc.CreateListingInput{
		Title:         body.Title,
		CardCondition: body.CardCondition,
		CardType:      body.CardType,
		Rarity:        body.Rarity,
		Price:         body.Price,
		Images:        body.Images,
		Description:   body.Description,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// PUT /api/v1/listings/update-listing/:id
func (h *Handlers) UpdateListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", 400, nil)
	}
	var body listingBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	viewerID := middleware.ViewerID(c)

	changes, err := h.Service.UpdateListing(c.Context(), listingID, viewerID, listsvc.UpdateListingInput{
		Title:         body.Title,
		CardCondition: body.CardCondition,
		CardType:      body.CardType,
		Rarity:        body.Rarity,
		Price:         body.Price,
		Images:        body.Images,
		Description:   body.Description,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(changes) == 0 {
		return response.Success(c, "No changes were made", nil, nil)
	}
	return response.Success(c, "Listing updated successfully: "+strings.Join(changes, ", "), nil, nil)
}

// PUT /api/v1/listings/update-listing-as-sold/:id
func (h *Handlers) MarkSold(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", 400, nil)
	}
	if err := h.Service.MarkSold(c.Context(), listingID, middleware.ViewerID(c)); err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "Listing marked as sold", nil, nil)
}

// DELETE /api/v1/listings/delete-listing/:id
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", 400, nil)
	}
	if err := h.Service.DeleteListing(c.Context(), listingID, middleware.ViewerID(c)); err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "Listing successfully soft deleted", nil, nil)
}

// POST /api/v1/listings/get-all-listing runs the filtered, sorted, paginated
// search. Anonymous viewers get no exclusion or cart enrichment.
func (h *Handlers) GetListings(c *fiber.Ctx) error {
	var filter search.ListingFilter
	if err := c.BodyParser(&filter); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	result, err := h.Search.Search(c.Context(), filter, middleware.ViewerID(c))
	if err != nil {
		if errors.Is(err, search.ErrInvalidRequest) {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Listings fetched successfully", result, nil)
}

// GET /api/v1/listings/get-listing-details/:id
func (h *Handlers) GetListingDetails(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", 400, nil)
	}
	details, err := h.Service.GetListingDetails(c.Context(), listingID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "Listing fetched successfully", details, nil)
}

// GET /api/v1/listings/get-listings-by-user/:username
func (h *Handlers) GetListingsBySeller(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return response.Error(c, "username is required", 400, nil)
	}
	result, err := h.Service.GetListingsBySeller(c.Context(), username)
	if err != nil {
		return writeServiceError(c, err)
	}
	return response.Success(c, "Seller listings fetched successfully", result, nil)
}

func writeServiceError(c *fiber.Ctx, err error) error {
	statusMap := map[string]int{
		"Listing not found":                          404,
		"User not found":                             404,
		"You are not allowed to update this listing": 403,
		"You are not allowed to delete this listing": 403,
		"Invalid listing title":                      400,
		"Invalid price":                              400,
		"Listing must have at least one image":       400,
		"Listing is not active":                      400,
	}
	if code, ok := statusMap[err.Error()]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	if strings.HasPrefix(err.Error(), "unknown ") {
		return response.Error(c, err.Error(), 400, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}
