package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart holds the listings a user has saved. One cart per user, created
// lazily on first add.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem links a cart to a listing. Notified marks that the holder was
// told the listing sold.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index" json:"cart_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID" json:"-"`
	Notified  bool      `gorm:"column:notified;default:false" json:"notified"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
