package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cardtrade-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service persists user notifications. Delivery is poll-based; real-time
// transport is handled outside this backend.
type Service struct {
	DB *gorm.DB
}

// Create stores a notification with an optional structured payload.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, message string, payload map[string]interface{}) (*domain.Notification, error) {
	n := &domain.Notification{UserID: userID, Message: message}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		n.Payload = datatypes.JSON(b)
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("Failed to create notification: %v", err)
	}
	return n, nil
}

// ListForUser returns the user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	var out []domain.Notification
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("Notification not found")
	}
	return nil
}

// NotifyListingSold fans a sold notice out to every user holding the listing
// in their cart who has not been notified yet, and marks those cart items
// notified. Returns the number of users notified.
func (s *Service) NotifyListingSold(ctx context.Context, listing *domain.Listing, sellerUsername string) (int, error) {
	type holder struct {
		UserID     uuid.UUID
		CartItemID uuid.UUID
	}
	var holders []holder
	err := s.DB.WithContext(ctx).Model(&domain.CartItem{}).
		Select("carts.user_id AS user_id, cart_items.id AS cart_item_id").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.listing_id = ? AND cart_items.notified = ?", listing.ID, false).
		Scan(&holders).Error
	if err != nil {
		return 0, err
	}
	if len(holders) == 0 {
		return 0, nil
	}

	message := fmt.Sprintf("Listing: %s by %s is sold out!", listing.Title, sellerUsername)
	payload := map[string]interface{}{
		"listing_id": listing.ID.String(),
		"event":      "listing_sold",
	}

	notified := 0
	for _, h := range holders {
		if _, err := s.Create(ctx, h.UserID, message, payload); err != nil {
			return notified, err
		}
		if err := s.DB.WithContext(ctx).Model(&domain.CartItem{}).
			Where("id = ?", h.CartItemID).
			Update("notified", true).Error; err != nil {
			return notified, err
		}
		notified++
	}
	return notified, nil
}
