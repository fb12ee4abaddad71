package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is a persisted user notification. Real-time delivery is out
// of scope; consumers poll and mark read.
type Notification struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Message   string         `gorm:"column:message;not null" json:"message"`
	Payload   datatypes.JSON `gorm:"column:payload;type:json" json:"payload"`
	Read      bool           `gorm:"column:read;default:false" json:"read"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
