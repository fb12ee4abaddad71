package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageList stores the DB json value as a string slice. A listing must carry
// at least one image URI on every read path; an empty list is a data
// integrity violation, not a query-time filter.
type ImageList []string

// Scan implements sql.Scanner for reading from the json column.
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for ImageList")
	}
}

// Value implements driver.Valuer for writing to the json column.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	bs, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}

// Listing is a card put up for sale. Status transitions (active->sold,
// active->deleted) are the only mutations after creation; deletion is soft.
type Listing struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title         string        `gorm:"column:title;not null" json:"title"`
	CardCondition CardCondition `gorm:"column:card_condition;type:varchar(32);not null" json:"card_condition"`
	CardType      CardType      `gorm:"column:card_type;type:varchar(32);not null" json:"card_type"`
	Rarity        Rarity        `gorm:"column:rarity;type:varchar(32);not null" json:"rarity"`
	// ConditionRank and RarityRank mirror the enums as orderable ints so the
	// "condition"/"rarity" sort keys have a defined order in SQL.
	ConditionRank int           `gorm:"column:condition_rank;not null" json:"-"`
	RarityRank    int           `gorm:"column:rarity_rank;not null" json:"-"`
	Price         float64       `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Images        ImageList     `gorm:"column:images;type:json" json:"images"`
	Status        ListingStatus `gorm:"column:status;type:varchar(16);default:'ACTIVE'" json:"status"`
	Description   string        `gorm:"column:description" json:"description"`
	SellerID      uuid.UUID     `gorm:"column:seller_id;type:uuid;not null" json:"seller_id"`
	Seller        *User         `gorm:"foreignKey:SellerID" json:"-"`
	CreatedAt     time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets the id (for DBs without gen_random_uuid) and keeps the
// rank columns in step with the enum columns.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = StatusActive
	}
	l.ConditionRank = l.CardCondition.Rank()
	l.RarityRank = l.Rarity.Rank()
	return nil
}

// BeforeSave re-derives the rank columns on updates that change the enums.
func (l *Listing) BeforeSave(tx *gorm.DB) error {
	if l.CardCondition != "" {
		l.ConditionRank = l.CardCondition.Rank()
	}
	if l.Rarity != "" {
		l.RarityRank = l.Rarity.Rank()
	}
	return nil
}
