package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// OrderSummary is the list view of one persisted order.
type OrderSummary struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber int64             `json:"order_number"`
	Status      enums.OrderStatus `json:"status"`
	Customer    string            `json:"customer_name"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// OrderDetail is the full order with its line item snapshots.
type OrderDetail struct {
	ID             uuid.UUID         `json:"id"`
	OrderNumber    int64             `json:"order_number"`
	Status         enums.OrderStatus `json:"status"`
	CustomerName   string            `json:"customer_name"`
	CustomerPhone  string            `json:"customer_phone"`
	Address        types.Address     `json:"address"`
	PaymentMethod  string            `json:"payment_method"`
	Coupon         *types.Coupon     `json:"coupon,omitempty"`
	SubtotalAmount decimal.Decimal   `json:"subtotal_amount"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	FreightAmount  decimal.Decimal   `json:"freight_amount"`
	TotalAmount    decimal.Decimal   `json:"total_amount"`
	Items          []OrderLine       `json:"items"`
	CreatedAt      time.Time         `json:"created_at"`
}

// OrderLine is one snapshotted line of a finalized order.
type OrderLine struct {
	ItemID         uuid.UUID             `json:"item_id"`
	Name           string                `json:"name"`
	Kind           enums.LineKind        `json:"kind"`
	Quantity       int                   `json:"quantity"`
	UnitPrice      decimal.Decimal       `json:"unit_price"`
	PriceFrom      bool                  `json:"price_from"`
	FreeShipping   bool                  `json:"free_shipping"`
	Selections     types.SelectedGroups  `json:"selections,omitempty"`
	Border         *types.BorderSnapshot `json:"border,omitempty"`
	Combination    *types.Combination    `json:"combination,omitempty"`
	SubtotalAmount decimal.Decimal       `json:"subtotal_amount"`
}

func newOrderSummary(order *models.Order) OrderSummary {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return OrderSummary{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Customer:    order.CustomerName,
		TotalAmount: order.TotalAmount,
		ItemCount:   count,
		CreatedAt:   order.CreatedAt,
	}
}

func newOrderDetail(order *models.Order) OrderDetail {
	items := make([]OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderLine{
			ItemID:         item.ItemID,
			Name:           item.Name,
			Kind:           item.Kind,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			PriceFrom:      item.PriceFrom,
			FreeShipping:   item.FreeShipping,
			Selections:     item.Selections,
			Border:         item.Border,
			Combination:    item.Combination,
			SubtotalAmount: item.SubtotalAmount,
		})
	}

	return OrderDetail{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		Address:        order.Address,
		PaymentMethod:  order.PaymentMethod,
		Coupon:         order.Coupon,
		SubtotalAmount: order.SubtotalAmount,
		DiscountAmount: order.DiscountAmount,
		FreightAmount:  order.FreightAmount,
		TotalAmount:    order.TotalAmount,
		Items:          items,
		CreatedAt:      order.CreatedAt,
	}
}
