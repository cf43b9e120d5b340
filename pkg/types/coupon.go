package types

import (
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
)

// Coupon is a validated coupon descriptor handed over by the external
// coupon service. The core only applies it arithmetically.
type Coupon struct {
	Code  string           `json:"code"`
	Type  enums.CouponType `json:"type"`
	Value decimal.Decimal  `json:"value"`
}

// Discount returns the amount this coupon removes from the given subtotal.
// The result is never negative and never exceeds the subtotal.
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.Sign() <= 0 {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch c.Type {
	case enums.CouponTypePercentage:
		discount = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100))
	case enums.CouponTypeFixed:
		discount = c.Value
	default:
		return decimal.Zero
	}

	if discount.Sign() < 0 {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
