package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// ListFilter narrows order listings. Zero values mean no filter.
type ListFilter struct {
	Status        *enums.OrderStatus
	CustomerPhone string
	Limit         int
	Offset        int
}

// Repository defines the persistence surface required by the order service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	NextOrderNumber(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// Notifier receives fire-and-forget events after an order is persisted.
// Failures must never roll back order creation.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order) error
	LoyaltyAccrual(ctx context.Context, order *models.Order) error
}

// FreightQuoter supplies the delivery amount for an address. The result is
// opaque to the core; a free-shipping line still overrides it to zero.
type FreightQuoter interface {
	FreightFor(ctx context.Context, address types.Address) (decimal.Decimal, error)
}
