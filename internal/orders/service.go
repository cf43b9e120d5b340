package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/codclick-aut6/clickprato6-sub000/internal/cart"
	"github.com/codclick-aut6/clickprato6-sub000/internal/pricing"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/logger"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/metrics"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CheckoutInput carries everything needed to finalize a session's cart.
type CheckoutInput struct {
	SessionID     string
	CustomerName  string
	CustomerPhone string
	Address       types.Address
	PaymentMethod string
	Coupon        *types.Coupon
	InitialStatus enums.OrderStatus
}

// Service exposes order finalization and lifecycle operations.
type Service interface {
	Finalize(ctx context.Context, input CheckoutInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	store    cart.SnapshotStore
	catalogs cart.CatalogSource
	freight  FreightQuoter
	notifier Notifier
	logg     *logger.Logger
	metrics  *metrics.OrderingMetrics
}

// NewService builds an order service backed by the provided stack. The
// notifier and metrics are optional.
func NewService(repo Repository, tx txRunner, store cart.SnapshotStore, catalogs cart.CatalogSource, freight FreightQuoter, notifier Notifier, logg *logger.Logger, m *metrics.OrderingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if catalogs == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if freight == nil {
		return nil, fmt.Errorf("freight quoter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		store:    store,
		catalogs: catalogs,
		freight:  freight,
		notifier: notifier,
		logg:     logg,
		metrics:  m,
	}, nil
}

// Finalize recomputes every price from the catalog, persists the order
// atomically and only then clears the cart and emits notifications.
// A persistence failure leaves the cart untouched and emits nothing.
func (s *service) Finalize(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	view, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	snap, _, err := s.store.Load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	composed, dropped := cart.Rehydrate(snap, view)
	if dropped > 0 {
		s.logg.Warn(ctx, fmt.Sprintf("dropped %d stale lines while finalizing", dropped))
	}
	if len(composed.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	status := input.InitialStatus
	if status == "" {
		status = enums.OrderStatusPending
	}
	if status != enums.OrderStatusPending && status != enums.OrderStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial status must be pending or completed")
	}

	subtotal := decimal.Zero
	items := make([]models.OrderLineItem, 0, len(composed.Lines))
	for _, line := range composed.Lines {
		lineTotal := pricing.LineTotal(line.PricingLine(), view)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderLineItem{
			ItemID:         line.ItemID,
			Name:           line.Name,
			Kind:           line.Kind,
			UnitPrice:      line.UnitPrice,
			PriceFrom:      line.PriceFrom,
			FreeShipping:   line.FreeShipping,
			Quantity:       line.Quantity,
			Selections:     line.Selections,
			Border:         line.Border,
			Combination:    line.Combination,
			SubtotalAmount: lineTotal,
		})
	}

	discount := decimal.Zero
	if input.Coupon != nil {
		discount = input.Coupon.Discount(subtotal)
	}

	freight := decimal.Zero
	if !composed.HasFreeShippingLine() {
		freight, err = s.freight.FreightFor(ctx, input.Address)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "quote freight")
		}
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	total = total.Add(freight)

	order := &models.Order{
		Status:         status,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		Address:        input.Address,
		PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
		Coupon:         input.Coupon,
		SubtotalAmount: subtotal,
		DiscountAmount: discount,
		FreightAmount:  freight,
		TotalAmount:    total,
		Items:          items,
	}

	var saved *models.Order
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		number, err := txRepo.NextOrderNumber(ctx)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		saved, err = txRepo.Create(ctx, order)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	if s.metrics != nil {
		s.metrics.IncOrderFinalized(string(saved.Status))
	}

	orderCtx := s.logg.WithOrderID(ctx, saved.ID.String())
	s.logg.Info(orderCtx, fmt.Sprintf("order #%d finalized", saved.OrderNumber))

	if err := s.store.Delete(ctx, input.SessionID); err != nil {
		s.logg.Warn(orderCtx, "failed to clear cart snapshot after checkout")
	}

	if s.notifier != nil {
		go s.dispatchNotifications(context.WithoutCancel(orderCtx), saved)
	}

	return saved, nil
}

// GetOrder loads one order with its line snapshots.
func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// ListOrders returns orders newest first, optionally filtered by status.
func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status filter")
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

// UpdateStatus moves the order through its lifecycle, rejecting transitions
// the state machine does not allow.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = status
	return order, nil
}

func (s *service) dispatchNotifications(ctx context.Context, order *models.Order) {
	if err := s.notifier.OrderCreated(ctx, order); err != nil {
		if s.metrics != nil {
			s.metrics.IncNotifyFailure("orders")
		}
		s.logg.Error(ctx, "order notification failed", err)
	}
	if err := s.notifier.LoyaltyAccrual(ctx, order); err != nil {
		if s.metrics != nil {
			s.metrics.IncNotifyFailure("loyalty")
		}
		s.logg.Error(ctx, "loyalty notification failed", err)
	}
}

func validateCheckout(input CheckoutInput) error {
	if strings.TrimSpace(input.SessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	if missing := input.Address.Validate(); missing != "" {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("address %s is required", missing))
	}
	if input.Coupon != nil && !input.Coupon.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon type")
	}
	return nil
}
