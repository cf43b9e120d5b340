package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// PriceLookup resolves a variation's current additional price. Unknown ids
// must resolve to zero, never error.
type PriceLookup interface {
	PriceOf(variationID uuid.UUID) decimal.Decimal
}

// Line is the minimal priced shape shared by cart lines and order lines.
type Line struct {
	Kind       enums.LineKind
	UnitPrice  decimal.Decimal
	PriceFrom  bool
	Quantity   int
	Selections types.SelectedGroups
	Border     *types.BorderSnapshot
}

var two = decimal.NewFromInt(2)

// LineTotal computes the authoritative money value of one line. Every
// surface that shows or persists a price goes through this function.
//
// Captured variation prices take precedence; a zero captured price falls
// back to the live lookup so rehydrated snapshot lines still price
// correctly after a catalog change. On half-pizza lines a variation tagged
// "whole" is charged for both halves.
func LineTotal(line Line, lookup PriceLookup) decimal.Decimal {
	if line.Quantity <= 0 {
		return decimal.Zero
	}

	unit := line.UnitPrice
	if line.Kind != enums.LineKindHalfPizza && line.PriceFrom {
		unit = decimal.Zero
	}

	variationsTotal := decimal.Zero
	for _, group := range line.Selections {
		for _, v := range group.Variations {
			if v.Quantity <= 0 {
				continue
			}
			price := v.AdditionalPrice
			if price.IsZero() && lookup != nil {
				price = lookup.PriceOf(v.VariationID)
			}
			contribution := price.Mul(decimal.NewFromInt(int64(v.Quantity)))
			if line.Kind == enums.LineKindHalfPizza && v.Half == enums.HalfSelectionWhole {
				contribution = contribution.Mul(two)
			}
			variationsTotal = variationsTotal.Add(contribution)
		}
	}

	borderTotal := decimal.Zero
	if line.Border != nil {
		borderTotal = line.Border.AdditionalPrice
	}

	return unit.Add(variationsTotal).Add(borderTotal).
		Mul(decimal.NewFromInt(int64(line.Quantity)))
}
