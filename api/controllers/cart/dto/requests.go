package cartdto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectionRow is one requested variation inside a group. On per-half
// groups of a combined pizza, an omitted half defaults to "whole": the
// topping covers both halves and its price counts twice.
type SelectionRow struct {
	VariationID uuid.UUID `json:"variation_id" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,min=1"`
	Half        string    `json:"half,omitempty" validate:"omitempty,oneof=half1 half2 whole"`
}

// SelectionGroup groups requested rows under their variation group.
type SelectionGroup struct {
	GroupID    uuid.UUID      `json:"group_id" validate:"required"`
	Variations []SelectionRow `json:"variations" validate:"required,min=1,dive"`
}

// AddItemRequest adds a standard catalog item to the session cart.
type AddItemRequest struct {
	ItemID     uuid.UUID        `json:"item_id" validate:"required"`
	Quantity   int              `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Selections []SelectionGroup `json:"selections,omitempty" validate:"omitempty,dive"`
	BorderID   uuid.UUID        `json:"border_id,omitempty"`
}

// AddCombinationRequest adds a half-and-half pizza built from two flavors.
type AddCombinationRequest struct {
	Flavor1ID  uuid.UUID        `json:"flavor1_id" validate:"required"`
	Flavor2ID  uuid.UUID        `json:"flavor2_id" validate:"required"`
	Quantity   int              `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Selections []SelectionGroup `json:"selections,omitempty" validate:"omitempty,dive"`
	BorderID   uuid.UUID        `json:"border_id,omitempty"`
}

// UpdateLineRequest replaces one line's configuration in place.
type UpdateLineRequest struct {
	Quantity   int              `json:"quantity" validate:"required,min=1"`
	Selections []SelectionGroup `json:"selections,omitempty" validate:"omitempty,dive"`
	BorderID   uuid.UUID        `json:"border_id,omitempty"`
}

// PreviewCombinationRequest asks for a half-and-half quote without
// touching the cart.
type PreviewCombinationRequest struct {
	Flavor1ID uuid.UUID `json:"flavor1_id" validate:"required"`
	Flavor2ID uuid.UUID `json:"flavor2_id" validate:"required"`
}

// ApplyCouponRequest attaches a coupon already validated upstream.
type ApplyCouponRequest struct {
	Code  string          `json:"code" validate:"required"`
	Type  string          `json:"type" validate:"required,oneof=percentage fixed"`
	Value decimal.Decimal `json:"value" validate:"required"`
}
