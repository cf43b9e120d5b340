package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Variation is a globally authored add-on. An empty CategoryIDs array
// means the variation applies to every category.
type Variation struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string          `gorm:"column:name;not null"`
	AdditionalPrice decimal.Decimal `gorm:"column:additional_price;type:numeric(10,2);not null;default:0"`
	Available       bool            `gorm:"column:available;not null;default:true"`
	CategoryIDs     pq.StringArray  `gorm:"column:category_ids;type:text[]"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
