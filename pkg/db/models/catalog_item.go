package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItem is the externally authored menu entry. Read-only to the
// ordering core; admin CRUD lives elsewhere.
type CatalogItem struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID        uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	Name              string           `gorm:"column:name;not null"`
	Description       *string          `gorm:"column:description"`
	Price             decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	PriceFrom         bool             `gorm:"column:price_from;not null;default:false"`
	IsPizza           bool             `gorm:"column:is_pizza;not null;default:false"`
	AllowsCombination bool             `gorm:"column:allows_combination;not null;default:false"`
	MaxFlavors        int              `gorm:"column:max_flavors;not null;default:1"`
	FreeShipping      bool             `gorm:"column:free_shipping;not null;default:false"`
	Available         bool             `gorm:"column:available;not null;default:true"`
	BorderPosition    string           `gorm:"column:border_position;not null;default:'after_groups'"`
	Groups            []VariationGroup `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Borders           []Border         `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
