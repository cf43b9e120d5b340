package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/internal/pricing"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// QuoteLine is one priced line as shown to the customer.
type QuoteLine struct {
	Index        int                   `json:"index"`
	ItemID       uuid.UUID             `json:"item_id"`
	Name         string                `json:"name"`
	Kind         enums.LineKind        `json:"kind"`
	Quantity     int                   `json:"quantity"`
	UnitPrice    decimal.Decimal       `json:"unit_price"`
	PriceFrom    bool                  `json:"price_from"`
	FreeShipping bool                  `json:"free_shipping"`
	Selections   types.SelectedGroups  `json:"selections,omitempty"`
	Border       *types.BorderSnapshot `json:"border,omitempty"`
	Combination  *types.Combination    `json:"combination,omitempty"`
	LineTotal    decimal.Decimal       `json:"line_total"`
}

// CombinationPreview describes a half-and-half pairing before it enters
// the cart.
type CombinationPreview struct {
	Name         string            `json:"name"`
	Price        decimal.Decimal   `json:"price"`
	FreeShipping bool              `json:"free_shipping"`
	Combination  types.Combination `json:"combination"`
}

// Quote is the cart's full priced view for one session.
type Quote struct {
	Lines          []QuoteLine     `json:"lines"`
	ItemCount      int             `json:"item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	Coupon         *types.Coupon   `json:"coupon,omitempty"`
	FreeShipping   bool            `json:"free_shipping"`
}

// BuildQuote prices the cart through the shared calculator.
func BuildQuote(c *Cart, lookup pricing.PriceLookup) *Quote {
	totals := c.ComputeTotals(lookup)
	quote := &Quote{
		Lines:          make([]QuoteLine, 0, len(c.Lines)),
		ItemCount:      totals.ItemCount,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		FinalTotal:     totals.FinalTotal,
		Coupon:         c.Coupon,
		FreeShipping:   c.HasFreeShippingLine(),
	}
	for i, line := range c.Lines {
		quote.Lines = append(quote.Lines, newQuoteLine(i, line, lookup))
	}
	return quote
}

func newQuoteLine(index int, line Line, lookup pricing.PriceLookup) QuoteLine {
	return QuoteLine{
		Index:        index,
		ItemID:       line.ItemID,
		Name:         line.Name,
		Kind:         line.Kind,
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice,
		PriceFrom:    line.PriceFrom,
		FreeShipping: line.FreeShipping,
		Selections:   line.Selections,
		Border:       line.Border,
		Combination:  line.Combination,
		LineTotal:    pricing.LineTotal(line.PricingLine(), lookup),
	}
}
