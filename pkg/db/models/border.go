package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Border is a pizza-only single-choice topping modifier. At most one
// border is attached to a line.
type Border struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID          uuid.UUID       `gorm:"column:item_id;type:uuid;not null"`
	Name            string          `gorm:"column:name;not null"`
	Description     *string         `gorm:"column:description"`
	AdditionalPrice decimal.Decimal `gorm:"column:additional_price;type:numeric(10,2);not null;default:0"`
	Available       bool            `gorm:"column:available;not null;default:true"`
	Position        int             `gorm:"column:position;not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
