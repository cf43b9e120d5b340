package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// VariationGroup bounds how many add-ons a customer picks for one item.
// VariationIDs is the ordered list of global variations offered by the
// group; availability and category filtering happen at read time.
type VariationGroup struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID           uuid.UUID      `gorm:"column:item_id;type:uuid;not null"`
	Name             string         `gorm:"column:name;not null"`
	InternalName     string         `gorm:"column:internal_name;not null"`
	MinRequired      int            `gorm:"column:min_required;not null;default:0"`
	MaxAllowed       int            `gorm:"column:max_allowed;not null;default:1"`
	CustomMessage    string         `gorm:"column:custom_message"`
	ApplyToHalfPizza bool           `gorm:"column:apply_to_half_pizza;not null;default:false"`
	AllowPerHalf     bool           `gorm:"column:allow_per_half;not null;default:false"`
	Position         int            `gorm:"column:position;not null;default:0"`
	VariationIDs     pq.StringArray `gorm:"column:variation_ids;type:text[]"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
