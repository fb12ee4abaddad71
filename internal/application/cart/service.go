package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cardtrade-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	cartIDsPrefix = "cart:listing-ids:"
	cartIDsTTL    = 5 * time.Minute
)

// Service owns cart persistence plus the Redis-cached listing-id set the
// search enricher reads.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// AddItem puts a listing in the user's cart, creating the cart on first use.
func (s *Service) AddItem(ctx context.Context, userID, listingID uuid.UUID) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("Listing not found")
		}
		return err
	}
	if listing.SellerID == userID {
		return errors.New("Cannot add your own listing to cart")
	}

	c, err := s.findOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.CartItem{}).
		Where("cart_id = ? AND listing_id = ?", c.ID, listingID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("Listing is already in cart")
	}

	item := domain.CartItem{CartID: c.ID, ListingID: listingID}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// RemoveItem takes a listing out of the user's cart.
func (s *Service) RemoveItem(ctx context.Context, userID, listingID uuid.UUID) error {
	var c domain.Cart
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("Cart not found")
		}
		return err
	}
	res := s.DB.WithContext(ctx).
		Where("cart_id = ? AND listing_id = ?", c.ID, listingID).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("Listing is not in cart")
	}
	s.invalidate(ctx, userID)
	return nil
}

// ItemSummary is the cart view of a listing.
type ItemSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	MainImage     string    `json:"main_image"`
	Price         float64   `json:"price"`
	CardCondition string    `json:"card_condition"`
	Rarity        string    `json:"rarity"`
	Status        string    `json:"status"`
}

// SellerGroup groups a user's cart items by the listing seller.
type SellerGroup struct {
	SellerName string        `json:"seller_name"`
	Items      []ItemSummary `json:"items"`
}

// GetItems returns the user's cart grouped by seller, in item insertion order
// within each group.
func (s *Service) GetItems(ctx context.Context, userID uuid.UUID) ([]SellerGroup, error) {
	var c domain.Cart
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []SellerGroup{}, nil
		}
		return nil, err
	}

	var items []domain.CartItem
	err := s.DB.WithContext(ctx).
		Where("cart_id = ?", c.ID).
		Order("created_at ASC").
		Preload("Listing").
		Preload("Listing.Seller").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	groups := make([]SellerGroup, 0)
	index := map[string]int{}
	for _, item := range items {
		l := item.Listing
		if l == nil || l.Seller == nil || len(l.Images) == 0 {
			continue
		}
		summary := ItemSummary{
			ID:            l.ID,
			Title:         l.Title,
			MainImage:     l.Images[0],
			Price:         l.Price,
			CardCondition: l.CardCondition.DisplayName(),
			Rarity:        l.Rarity.DisplayName(),
			Status:        l.Status.DisplayName(),
		}
		seller := l.Seller.Username
		if i, ok := index[seller]; ok {
			groups[i].Items = append(groups[i].Items, summary)
		} else {
			index[seller] = len(groups)
			groups = append(groups, SellerGroup{SellerName: seller, Items: []ItemSummary{summary}})
		}
	}
	return groups, nil
}

// ListingIDs returns the set of listing ids in the user's cart, serving the
// search enricher. Results are cached in Redis; a user without a cart gets an
// empty set.
func (s *Service) ListingIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	key := cartIDsPrefix + userID.String()
	if s.Rdb != nil {
		if b, err := s.Rdb.Get(ctx, key).Bytes(); err == nil {
			var ids []uuid.UUID
			if err := json.Unmarshal(b, &ids); err == nil {
				return toSet(ids), nil
			}
		}
	}

	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).Model(&domain.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Pluck("cart_items.listing_id", &ids).Error
	if err != nil {
		return nil, err
	}

	if s.Rdb != nil {
		if b, err := json.Marshal(ids); err == nil {
			s.Rdb.Set(ctx, key, b, cartIDsTTL)
		}
	}
	return toSet(ids), nil
}

func (s *Service) findOrCreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	var c domain.Cart
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = domain.Cart{UserID: userID}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.Rdb != nil {
		s.Rdb.Del(ctx, cartIDsPrefix+userID.String())
	}
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
