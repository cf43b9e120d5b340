package orders

import (
	"github.com/shopspring/decimal"

	ordersvc "github.com/codclick-aut6/clickprato6-sub000/internal/orders"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// CheckoutRequest carries customer and delivery details for finalization.
// Line items never appear here; the order is built from the stored cart.
type CheckoutRequest struct {
	CustomerName  string         `json:"customer_name" validate:"required"`
	CustomerPhone string         `json:"customer_phone" validate:"required"`
	Address       AddressPayload `json:"address" validate:"required"`
	PaymentMethod string         `json:"payment_method" validate:"required"`
	Coupon        *CouponPayload `json:"coupon,omitempty"`
	InitialStatus string         `json:"initial_status,omitempty" validate:"omitempty,oneof=pending completed"`
}

// AddressPayload mirrors the delivery address stored on the order.
type AddressPayload struct {
	Street     string `json:"street" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zip_code,omitempty"`
}

// CouponPayload is an order-level coupon descriptor validated upstream.
type CouponPayload struct {
	Code  string          `json:"code" validate:"required"`
	Type  string          `json:"type" validate:"required,oneof=percentage fixed"`
	Value decimal.Decimal `json:"value" validate:"required"`
}

// UpdateStatusRequest names the next lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func toCheckoutInput(sessionID string, payload CheckoutRequest) ordersvc.CheckoutInput {
	input := ordersvc.CheckoutInput{
		SessionID:     sessionID,
		CustomerName:  payload.CustomerName,
		CustomerPhone: payload.CustomerPhone,
		Address: types.Address{
			Street:     payload.Address.Street,
			Number:     payload.Address.Number,
			Complement: payload.Address.Complement,
			District:   payload.Address.District,
			City:       payload.Address.City,
			State:      payload.Address.State,
			ZipCode:    payload.Address.ZipCode,
		},
		PaymentMethod: payload.PaymentMethod,
		InitialStatus: enums.OrderStatus(payload.InitialStatus),
	}
	if input.InitialStatus == "" {
		input.InitialStatus = enums.OrderStatusPending
	}
	if payload.Coupon != nil {
		input.Coupon = &types.Coupon{
			Code:  payload.Coupon.Code,
			Type:  enums.CouponType(payload.Coupon.Type),
			Value: payload.Coupon.Value,
		}
	}
	return input
}
