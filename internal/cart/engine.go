package cart

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/internal/pricing"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// Line is one configured, priced entry of the cart.
type Line struct {
	ItemID       uuid.UUID            `json:"item_id"`
	Name         string               `json:"name"`
	Kind         enums.LineKind       `json:"kind"`
	UnitPrice    decimal.Decimal      `json:"unit_price"`
	PriceFrom    bool                 `json:"price_from"`
	FreeShipping bool                 `json:"free_shipping"`
	Quantity     int                  `json:"quantity"`
	Selections   types.SelectedGroups `json:"selections,omitempty"`
	Border       *types.BorderSnapshot `json:"border,omitempty"`
	Combination  *types.Combination   `json:"combination,omitempty"`
}

// IdentityKey decides line merging: item id, line kind, canonical
// selections, border id and, for half-and-half lines, the flavor pair.
// Combined lines reuse flavor1's item id, so kind and pair keep them apart
// from the plain flavor and from other pairings sharing that flavor.
func (l Line) IdentityKey() string {
	borderID := ""
	if l.Border != nil {
		borderID = l.Border.BorderID.String()
	}
	pair := ""
	if l.Combination != nil {
		pair = l.Combination.Flavor1.ID.String() + "+" + l.Combination.Flavor2.ID.String()
	}
	return strings.Join([]string{l.ItemID.String(), string(l.Kind), l.Selections.IdentityKey(), borderID, pair}, "|")
}

// PricingLine projects the cart line onto the shared calculator's shape.
func (l Line) PricingLine() pricing.Line {
	return pricing.Line{
		Kind:       l.Kind,
		UnitPrice:  l.UnitPrice,
		PriceFrom:  l.PriceFrom,
		Quantity:   l.Quantity,
		Selections: l.Selections,
		Border:     l.Border,
	}
}

// Cart is the in-memory composition state for one session. Mutations are
// synchronous; derived totals are recomputed from scratch on demand so every
// surface reads the same numbers.
type Cart struct {
	Lines  []Line
	Coupon *types.Coupon
}

// Totals are the derived money values of the cart.
type Totals struct {
	Subtotal       decimal.Decimal
	ItemCount      int
	DiscountAmount decimal.Decimal
	FinalTotal     decimal.Decimal
}

// AddLine merges the line into an existing identity match or appends it.
// Business validity was already settled by the selection flow; this never
// rejects.
func (c *Cart) AddLine(line Line) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	key := line.IdentityKey()
	for i := range c.Lines {
		if c.Lines[i].IdentityKey() == key {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// RemoveLine removes the first line for the item id.
func (c *Cart) RemoveLine(itemID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Increment raises the first matching line's quantity by one.
func (c *Cart) Increment(itemID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity++
			return true
		}
	}
	return false
}

// Decrement lowers the first matching line's quantity; at one, the line is
// removed instead.
func (c *Cart) Decrement(itemID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			if c.Lines[i].Quantity <= 1 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity--
			}
			return true
		}
	}
	return false
}

// UpdateLineByIndex replaces a line's selections, border and quantity in
// place. The edit path never re-merges against other lines.
func (c *Cart) UpdateLineByIndex(index int, selections types.SelectedGroups, border *types.BorderSnapshot, quantity int) error {
	if index < 0 || index >= len(c.Lines) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line index out of range")
	}
	c.Lines[index].Selections = selections
	c.Lines[index].Border = border
	if quantity > 0 {
		c.Lines[index].Quantity = quantity
	}
	return nil
}

// Clear empties the cart and drops any applied coupon.
func (c *Cart) Clear() {
	c.Lines = nil
	c.Coupon = nil
}

// ApplyCoupon attaches an externally validated coupon descriptor.
func (c *Cart) ApplyCoupon(coupon *types.Coupon) {
	c.Coupon = coupon
}

// ItemCount sums all line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// HasFreeShippingLine reports whether any line waives freight.
func (c *Cart) HasFreeShippingLine() bool {
	for _, line := range c.Lines {
		if line.FreeShipping {
			return true
		}
	}
	return false
}

// Subtotal sums every line total through the shared calculator.
func (c *Cart) Subtotal(lookup pricing.PriceLookup) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(pricing.LineTotal(line.PricingLine(), lookup))
	}
	return total
}

// ComputeTotals derives subtotal, discount and the clamped final total.
func (c *Cart) ComputeTotals(lookup pricing.PriceLookup) Totals {
	subtotal := c.Subtotal(lookup)
	discount := decimal.Zero
	if c.Coupon != nil {
		discount = c.Coupon.Discount(subtotal)
	}
	final := subtotal.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	return Totals{
		Subtotal:       subtotal,
		ItemCount:      c.ItemCount(),
		DiscountAmount: discount,
		FinalTotal:     final,
	}
}
