package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// Order is the immutable record produced at finalization. Every monetary
// field is recomputed from catalog data before the row is written; client
// declared totals are never persisted.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber    int64             `gorm:"column:order_number;not null"`
	Status         enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	CustomerName   string            `gorm:"column:customer_name;not null"`
	CustomerPhone  string            `gorm:"column:customer_phone;not null"`
	Address        types.Address     `gorm:"column:address;type:jsonb;serializer:json"`
	PaymentMethod  string            `gorm:"column:payment_method;not null"`
	Coupon         *types.Coupon     `gorm:"column:coupon;type:jsonb;serializer:json"`
	SubtotalAmount decimal.Decimal   `gorm:"column:subtotal_amount;type:numeric(10,2);not null"`
	DiscountAmount decimal.Decimal   `gorm:"column:discount_amount;type:numeric(10,2);not null;default:0"`
	FreightAmount  decimal.Decimal   `gorm:"column:freight_amount;type:numeric(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Items          []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
