package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// OrderLineItem snapshots one resolved line. The row carries every name
// and price needed to display the order after later catalog edits.
type OrderLineItem struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID             `gorm:"column:order_id;type:uuid;not null"`
	ItemID         uuid.UUID             `gorm:"column:item_id;type:uuid;not null"`
	Name           string                `gorm:"column:name;not null"`
	Kind           enums.LineKind        `gorm:"column:kind;not null;default:'standard'"`
	UnitPrice      decimal.Decimal       `gorm:"column:unit_price;type:numeric(10,2);not null"`
	PriceFrom      bool                  `gorm:"column:price_from;not null;default:false"`
	FreeShipping   bool                  `gorm:"column:free_shipping;not null;default:false"`
	Quantity       int                   `gorm:"column:quantity;not null"`
	Selections     types.SelectedGroups  `gorm:"column:selections;type:jsonb;serializer:json"`
	Border         *types.BorderSnapshot `gorm:"column:border;type:jsonb;serializer:json"`
	Combination    *types.Combination    `gorm:"column:combination;type:jsonb;serializer:json"`
	SubtotalAmount decimal.Decimal       `gorm:"column:subtotal_amount;type:numeric(10,2);not null"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
