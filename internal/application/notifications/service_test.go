package notifications

import (
	"context"
	"testing"

	"cardtrade-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNotificationsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Listing{}, &domain.Cart{}, &domain.CartItem{}, &domain.Notification{}))
	return &Service{DB: db}, db
}

func TestCreateAndList(t *testing.T) {
	svc, _ := setupNotificationsTest(t)
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, "first", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, "second", map[string]interface{}{"k": "v"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), "someone else's", nil)
	require.NoError(t, err)

	out, err := svc.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestMarkRead(t *testing.T) {
	svc, _ := setupNotificationsTest(t)
	userID := uuid.New()
	ctx := context.Background()

	n, err := svc.Create(ctx, userID, "hello", nil)
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, userID, n.ID))

	// Wrong owner or unknown id
	err = svc.MarkRead(ctx, uuid.New(), n.ID)
	assert.EqualError(t, err, "Notification not found")
	err = svc.MarkRead(ctx, userID, uuid.New())
	assert.EqualError(t, err, "Notification not found")
}

func TestNotifyListingSold_SkipsAlreadyNotified(t *testing.T) {
	svc, db := setupNotificationsTest(t)
	ctx := context.Background()

	seller := &domain.User{Username: "ash", Name: "ash", Email: "ash@test.com", Region: domain.RegionCentral}
	require.NoError(t, db.Create(seller).Error)
	listing := &domain.Listing{
		Title: "Charizard", CardCondition: domain.ConditionBrandNew,
		CardType: domain.TypePokemonCard, Rarity: domain.RarityRare,
		Price: 10, Images: domain.ImageList{"x"}, SellerID: seller.ID,
	}
	require.NoError(t, db.Create(listing).Error)

	holder1 := uuid.New()
	holder2 := uuid.New()
	for _, userID := range []uuid.UUID{holder1, holder2} {
		cart := &domain.Cart{UserID: userID}
		require.NoError(t, db.Create(cart).Error)
		require.NoError(t, db.Create(&domain.CartItem{CartID: cart.ID, ListingID: listing.ID}).Error)
	}

	notified, err := svc.NotifyListingSold(ctx, listing, "ash")
	require.NoError(t, err)
	assert.Equal(t, 2, notified)

	// Fan-out is idempotent per cart item
	notified, err = svc.NotifyListingSold(ctx, listing, "ash")
	require.NoError(t, err)
	assert.Equal(t, 0, notified)
}
