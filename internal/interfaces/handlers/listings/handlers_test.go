package listings

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	listsvc "cardtrade-backend/internal/application/listings"
	"cardtrade-backend/internal/application/search"
	"cardtrade-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupListingsTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Listing{}, &domain.Cart{}, &domain.CartItem{}, &domain.Notification{}))
	h := &Handlers{
		Service: &listsvc.Service{DB: db},
		Search:  &search.Service{DB: db},
	}
	return h, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	u := &domain.User{Username: username, Name: username, Email: username + "@test.com", Region: domain.RegionWest}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedListing(t *testing.T, db *gorm.DB, seller *domain.User, title string, price float64) *domain.Listing {
	l := &domain.Listing{
		Title:         title,
		CardCondition: domain.ConditionBrandNew,
		CardType:      domain.TypePokemonCard,
		Rarity:        domain.RarityCommon,
		Price:         price,
		Images:        domain.ImageList{"https://img.test/card.jpg"},
		SellerID:      seller.ID,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func asUser(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": userID.String()})
		return c.Next()
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (map[string]interface{}, int) {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result, resp.StatusCode
}

func TestGetListings_EmptyDB(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := fiber.New()
	app.Post("/get-all-listing", h.GetListings)

	result, code := postJSON(t, app, "/get-all-listing", map[string]interface{}{})
	assert.Equal(t, 200, code)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Listings fetched successfully", result["message"])

	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["total_elements"])
	assert.Equal(t, float64(0), data["total_pages"])
}

func TestGetListings_FilteredAndPaged(t *testing.T) {
	h, db := setupListingsTest(t)
	seller := seedUser(t, db, "ash")
	seedListing(t, db, seller, "Charizard", 100)
	seedListing(t, db, seller, "Pikachu", 10)

	app := fiber.New()
	app.Post("/get-all-listing", h.GetListings)

	result, code := postJSON(t, app, "/get-all-listing", map[string]interface{}{
		"min_price": 50,
	})
	assert.Equal(t, 200, code)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_elements"])
	listings := data["listings"].([]interface{})
	require.Len(t, listings, 1)
	assert.Equal(t, "Charizard", listings[0].(map[string]interface{})["title"])
}

func TestGetListings_MalformedPageIs400(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := fiber.New()
	app.Post("/get-all-listing", h.GetListings)

	result, code := postJSON(t, app, "/get-all-listing", map[string]interface{}{"page": "abc"})
	assert.Equal(t, 400, code)
	assert.Equal(t, "error", result["status"])
}

func TestGetListings_InvertedPriceRangeIs400(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := fiber.New()
	app.Post("/get-all-listing", h.GetListings)

	_, code := postJSON(t, app, "/get-all-listing", map[string]interface{}{
		"min_price": 100, "max_price": 10,
	})
	assert.Equal(t, 400, code)
}

func TestGetListings_ExcludeCurrentUser(t *testing.T) {
	h, db := setupListingsTest(t)
	ash := seedUser(t, db, "ash")
	brock := seedUser(t, db, "brock")
	seedListing(t, db, ash, "from ash", 10)
	seedListing(t, db, brock, "from brock", 10)

	app := fiber.New()
	app.Use(asUser(brock.ID))
	app.Post("/get-all-listing", h.GetListings)

	result, code := postJSON(t, app, "/get-all-listing", map[string]interface{}{
		"exclude_current_user": true,
	})
	assert.Equal(t, 200, code)
	data := result["data"].(map[string]interface{})
	listings := data["listings"].([]interface{})
	require.Len(t, listings, 1)
	assert.Equal(t, "from ash", listings[0].(map[string]interface{})["title"])
}

func TestCreateListing_InvalidBody(t *testing.T) {
	h, db := setupListingsTest(t)
	seller := seedUser(t, db, "ash")

	app := fiber.New()
	app.Use(asUser(seller.ID))
	app.Post("/create-listing", h.CreateListing)

	result, code := postJSON(t, app, "/create-listing", map[string]interface{}{
		"title": "Charizard", "card_condition": "Brand New", "card_type": "Pokemon Card",
		"rarity": "Mythic", "price": 10, "images": []string{"x"},
	})
	assert.Equal(t, 400, code)
	detail := result["error"].(map[string]interface{})
	assert.Contains(t, detail["message"], "unknown rarity")
}

func TestCreateListing_Success(t *testing.T) {
	h, db := setupListingsTest(t)
	seller := seedUser(t, db, "ash")

	app := fiber.New()
	app.Use(asUser(seller.ID))
	app.Post("/create-listing", h.CreateListing)

	result, code := postJSON(t, app, "/create-listing", map[string]interface{}{
		"title": "Charizard", "card_condition": "Brand New", "card_type": "Pokemon Card",
		"rarity": "Rare", "price": 10, "images": []string{"https://img.test/c.jpg"},
	})
	assert.Equal(t, 201, code)
	assert.Equal(t, "Listing created successfully", result["message"])
}

func TestGetListingDetails_InvalidUUID(t *testing.T) {
	h, _ := setupListingsTest(t)
	app := fiber.New()
	app.Get("/get-listing-details/:id", h.GetListingDetails)

	req := httptest.NewRequest("GET", "/get-listing-details/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMarkSold_NotOwnerIs403(t *testing.T) {
	h, db := setupListingsTest(t)
	ash := seedUser(t, db, "ash")
	brock := seedUser(t, db, "brock")
	listing := seedListing(t, db, ash, "Charizard", 10)

	app := fiber.New()
	app.Use(asUser(brock.ID))
	app.Put("/update-listing-as-sold/:id", h.MarkSold)

	req := httptest.NewRequest("PUT", "/update-listing-as-sold/"+listing.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
