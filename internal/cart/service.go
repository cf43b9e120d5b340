package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
	"github.com/codclick-aut6/clickprato6-sub000/internal/combo"
	"github.com/codclick-aut6/clickprato6-sub000/internal/selection"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/logger"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/metrics"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// AddItemInput is the payload for adding a standard item.
type AddItemInput struct {
	ItemID     uuid.UUID
	Quantity   int
	Selections types.SelectedGroups
	BorderID   uuid.UUID
}

// AddCombinationInput is the payload for adding a half-and-half line.
type AddCombinationInput struct {
	Flavor1ID  uuid.UUID
	Flavor2ID  uuid.UUID
	Quantity   int
	Selections types.SelectedGroups
	BorderID   uuid.UUID
}

// UpdateLineInput replaces a line's configuration in place.
type UpdateLineInput struct {
	Selections types.SelectedGroups
	BorderID   uuid.UUID
	Quantity   int
}

// Service exposes session-scoped cart composition. Each call loads the
// snapshot, rehydrates it against a fresh catalog view, applies the
// mutation and persists the result.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Quote, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Quote, error)
	AddCombination(ctx context.Context, sessionID string, input AddCombinationInput) (*Quote, error)
	PreviewLine(ctx context.Context, input AddItemInput) (*QuoteLine, error)
	PreviewCombination(ctx context.Context, flavor1ID, flavor2ID uuid.UUID) (*CombinationPreview, error)
	IncrementLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*Quote, error)
	DecrementLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*Quote, error)
	RemoveLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*Quote, error)
	UpdateLine(ctx context.Context, sessionID string, index int, input UpdateLineInput) (*Quote, error)
	ApplyCoupon(ctx context.Context, sessionID string, coupon *types.Coupon) (*Quote, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    SnapshotStore
	catalogs CatalogSource
	logg     *logger.Logger
	metrics  *metrics.OrderingMetrics
}

// NewService builds the cart service.
func NewService(store SnapshotStore, catalogs CatalogSource, logg *logger.Logger, m *metrics.OrderingMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if catalogs == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: store, catalogs: catalogs, logg: logg, metrics: m}, nil
}

// Get returns the current priced cart.
func (s *service) Get(ctx context.Context, sessionID string) (*Quote, error) {
	view, cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return BuildQuote(cart, view), nil
}

// AddItem configures and adds one standard catalog item.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Quote, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	view, cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, ok := view.Item(input.ItemID)
	if !ok || !item.Available {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
	}

	selections, border, err := s.configureStandard(*item, view, input.Selections, input.BorderID)
	if err != nil {
		return nil, err
	}

	cart.AddLine(Line{
		ItemID:       item.ID,
		Name:         item.Name,
		Kind:         enums.LineKindStandard,
		UnitPrice:    item.Price,
		PriceFrom:    item.PriceFrom,
		FreeShipping: item.FreeShipping,
		Quantity:     input.Quantity,
		Selections:   selections,
		Border:       border,
	})

	return s.persist(ctx, sessionID, cart, view)
}

// AddCombination combines two flavors and adds the derived line.
func (s *service) AddCombination(ctx context.Context, sessionID string, input AddCombinationInput) (*Quote, error) {
	if input.Flavor1ID == uuid.Nil || input.Flavor2ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "both flavor ids are required")
	}

	view, cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	flavor1, ok1 := view.Item(input.Flavor1ID)
	flavor2, ok2 := view.Item(input.Flavor2ID)
	if !ok1 || !ok2 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "flavor not found in catalog")
	}

	combined, err := combo.Combine(*flavor1, *flavor2, view)
	if err != nil {
		return nil, err
	}
	if combined.Degenerate() {
		s.logg.Debug(ctx, "degenerate combination: both halves are the same flavor")
	}

	item := combined.Item()
	var selections types.SelectedGroups
	var border *types.BorderSnapshot
	if len(item.Groups) > 0 {
		session, err := selection.NewCombinedSession(combined, view)
		if err != nil {
			return nil, err
		}
		selections, border, err = s.runSession(session, input.Selections, input.BorderID)
		if err != nil {
			return nil, err
		}
	} else {
		border = resolveBorder(optionalID(input.BorderID), item.Borders)
	}

	combination := combined.Combination
	cart.AddLine(Line{
		ItemID:       item.ID,
		Name:         combined.Name,
		Kind:         enums.LineKindHalfPizza,
		UnitPrice:    combined.Price,
		FreeShipping: combined.FreeShipping,
		Quantity:     input.Quantity,
		Selections:   selections,
		Border:       border,
		Combination:  &combination,
	})

	return s.persist(ctx, sessionID, cart, view)
}

// PreviewLine prices a candidate configuration without touching the cart.
func (s *service) PreviewLine(ctx context.Context, input AddItemInput) (*QuoteLine, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	view, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	item, ok := view.Item(input.ItemID)
	if !ok || !item.Available {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
	}

	selections, border, err := s.configureStandard(*item, view, input.Selections, input.BorderID)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	line := newQuoteLine(0, Line{
		ItemID:       item.ID,
		Name:         item.Name,
		Kind:         enums.LineKindStandard,
		UnitPrice:    item.Price,
		PriceFrom:    item.PriceFrom,
		FreeShipping: item.FreeShipping,
		Quantity:     quantity,
		Selections:   selections,
		Border:       border,
	}, view)
	return &line, nil
}

// PreviewCombination resolves a half-and-half pairing without touching
// the cart.
func (s *service) PreviewCombination(ctx context.Context, flavor1ID, flavor2ID uuid.UUID) (*CombinationPreview, error) {
	if flavor1ID == uuid.Nil || flavor2ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "both flavor ids are required")
	}

	view, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	flavor1, ok1 := view.Item(flavor1ID)
	flavor2, ok2 := view.Item(flavor2ID)
	if !ok1 || !ok2 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "flavor not found in catalog")
	}

	combined, err := combo.Combine(*flavor1, *flavor2, view)
	if err != nil {
		return nil, err
	}

	return &CombinationPreview{
		Name:         combined.Name,
		Price:        combined.Price,
		FreeShipping: combined.FreeShipping,
		Combination:  combined.Combination,
	}, nil
}

// IncrementLine raises the first matching line's quantity.
func (s *service) IncrementLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*Quote, error) {
	return s.mutateLine(ctx, sessionID, itemID, (*Cart).Increment)
}

// DecrementLine lowers the quantity, removing the line at one.
func (s *service) DecrementLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*Quote, error) {
	return s.mutateLine(ctx, sessionID, itemID, (*Cart).Decrement)
}

// RemoveLine removes the first matching line.
func (s *service) RemoveLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*Quote, error) {
	return s.mutateLine(ctx, sessionID, itemID, (*Cart).RemoveLine)
}

// UpdateLine re-validates and replaces one line's configuration in place.
func (s *service) UpdateLine(ctx context.Context, sessionID string, index int, input UpdateLineInput) (*Quote, error) {
	view, cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(cart.Lines) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line index out of range")
	}

	line := cart.Lines[index]
	var selections types.SelectedGroups
	var border *types.BorderSnapshot

	if line.Kind == enums.LineKindHalfPizza && line.Combination != nil {
		flavor1, ok1 := view.Item(line.Combination.Flavor1.ID)
		flavor2, ok2 := view.Item(line.Combination.Flavor2.ID)
		if !ok1 || !ok2 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "combined flavor no longer in catalog")
		}
		combined, err := combo.Combine(*flavor1, *flavor2, view)
		if err != nil {
			return nil, err
		}
		if len(combined.Item().Groups) > 0 {
			session, err := selection.NewCombinedSession(combined, view)
			if err != nil {
				return nil, err
			}
			selections, border, err = s.runSession(session, input.Selections, input.BorderID)
			if err != nil {
				return nil, err
			}
		} else {
			border = resolveBorder(optionalID(input.BorderID), combined.Item().Borders)
		}
	} else {
		item, ok := view.Item(line.ItemID)
		if !ok || !item.Available {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		selections, border, err = s.configureStandard(*item, view, input.Selections, input.BorderID)
		if err != nil {
			return nil, err
		}
	}

	if err := cart.UpdateLineByIndex(index, selections, border, input.Quantity); err != nil {
		return nil, err
	}
	return s.persist(ctx, sessionID, cart, view)
}

// ApplyCoupon attaches the externally validated coupon.
func (s *service) ApplyCoupon(ctx context.Context, sessionID string, coupon *types.Coupon) (*Quote, error) {
	view, cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.ApplyCoupon(coupon)
	return s.persist(ctx, sessionID, cart, view)
}

// Clear drops the cart and its snapshot.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *service) mutateLine(ctx context.Context, sessionID string, itemID uuid.UUID, op func(*Cart, uuid.UUID) bool) (*Quote, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	view, cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !op(cart, itemID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return s.persist(ctx, sessionID, cart, view)
}

func (s *service) configureStandard(item models.CatalogItem, view *catalog.View, desired types.SelectedGroups, borderID uuid.UUID) (types.SelectedGroups, *types.BorderSnapshot, error) {
	if len(item.Groups) == 0 {
		return nil, resolveBorder(optionalID(borderID), item.Borders), nil
	}
	session, err := selection.NewSession(item, view)
	if err != nil {
		return nil, nil, err
	}
	return s.runSession(session, desired, borderID)
}

func (s *service) runSession(session *selection.Session, desired types.SelectedGroups, borderID uuid.UUID) (types.SelectedGroups, *types.BorderSnapshot, error) {
	if err := session.Apply(desired); err != nil {
		return nil, nil, err
	}
	if borderID != uuid.Nil {
		if err := session.SelectBorder(borderID); err != nil {
			return nil, nil, err
		}
	}
	return session.Confirm()
}

func (s *service) loadCart(ctx context.Context, sessionID string) (*catalog.View, *Cart, error) {
	if sessionID == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	view, err := s.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	snap, _, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	cart, dropped := Rehydrate(snap, view)
	if dropped > 0 {
		if s.metrics != nil {
			s.metrics.AddRehydrateDropped(dropped)
		}
		s.logg.Warn(ctx, fmt.Sprintf("dropped %d stale cart lines on rehydration", dropped))
		// Persist the surviving lines so a follow-up read agrees with
		// the cart just returned.
		if err := s.store.Save(ctx, sessionID, SnapshotOf(cart)); err != nil {
			s.logg.Warn(ctx, "failed to rewrite cart snapshot after drop")
		}
	}
	return view, cart, nil
}

func (s *service) persist(ctx context.Context, sessionID string, cart *Cart, view *catalog.View) (*Quote, error) {
	if err := s.store.Save(ctx, sessionID, SnapshotOf(cart)); err != nil {
		return nil, err
	}
	return BuildQuote(cart, view), nil
}

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
