package selection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
	"github.com/codclick-aut6/clickprato6-sub000/internal/combo"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

type fixture struct {
	item       models.CatalogItem
	group      models.VariationGroup
	variations []models.Variation
	view       *catalog.View
}

func newFixture(t *testing.T, minRequired, maxAllowed int) fixture {
	t.Helper()

	bacon := models.Variation{ID: uuid.New(), Name: "Bacon", AdditionalPrice: decimal.NewFromInt(5), Available: true}
	cheddar := models.Variation{ID: uuid.New(), Name: "Cheddar", AdditionalPrice: decimal.NewFromInt(4), Available: true}

	item := models.CatalogItem{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Burger",
		Price:      decimal.NewFromInt(30),
		Available:  true,
	}
	group := models.VariationGroup{
		ID:           uuid.New(),
		ItemID:       item.ID,
		Name:         "Extras",
		MinRequired:  minRequired,
		MaxAllowed:   maxAllowed,
		VariationIDs: pq.StringArray{bacon.ID.String(), cheddar.ID.String()},
	}
	item.Groups = []models.VariationGroup{group}

	return fixture{
		item:       item,
		group:      group,
		variations: []models.Variation{bacon, cheddar},
		view:       catalog.NewView([]models.CatalogItem{item}, []models.Variation{bacon, cheddar}),
	}
}

func TestConfirmBlockedWhileGroupUnderMin(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 1, 2)
	session, err := NewSession(fx.item, fx.view)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if _, _, err := session.Confirm(); err == nil {
		t.Fatal("expected confirm to fail while group is under min")
	}
	if session.State() == StateConfirmed {
		t.Fatal("session must not close on failed confirm")
	}

	if err := session.Increase(fx.group.ID, fx.variations[0].ID); err != nil {
		t.Fatalf("increase: %v", err)
	}
	if session.State() != StateValid {
		t.Fatalf("expected valid state, got %s", session.State())
	}

	selections, _, err := session.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(selections) != 1 || selections[0].Variations[0].Quantity != 1 {
		t.Fatalf("unexpected selections: %+v", selections)
	}
}

func TestIncreaseBlockedAtMax(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 0, 1)
	session, err := NewSession(fx.item, fx.view)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := session.Increase(fx.group.ID, fx.variations[0].ID); err != nil {
		t.Fatalf("first increase: %v", err)
	}
	err = session.Increase(fx.group.ID, fx.variations[1].ID)
	if err == nil {
		t.Fatal("expected increase past max to be blocked")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNoOperationSequenceConfirmsInvalidGroup(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 2, 3)
	session, err := NewSession(fx.item, fx.view)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	// walk through add/remove churn ending below min
	steps := []func() error{
		func() error { return session.Increase(fx.group.ID, fx.variations[0].ID) },
		func() error { return session.Increase(fx.group.ID, fx.variations[1].ID) },
		func() error { return session.Decrease(fx.group.ID, fx.variations[0].ID) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if session.State() != StateInvalid {
		t.Fatalf("expected invalid state, got %s", session.State())
	}
	if _, _, err := session.Confirm(); err == nil {
		t.Fatal("confirm must stay blocked while any group violates bounds")
	}
}

func TestDecreaseClearsHalfTagAtZero(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 0, 4)
	fx.item.AllowsCombination = true
	fx.item.IsPizza = true
	fx.item.Groups[0].ApplyToHalfPizza = true
	fx.item.Groups[0].AllowPerHalf = true

	combined, err := combo.Combine(fx.item, fx.item, fx.view)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	session, err := NewCombinedSession(combined, fx.view)
	if err != nil {
		t.Fatalf("new combined session: %v", err)
	}

	groupID := fx.item.Groups[0].ID
	variationID := fx.variations[0].ID

	if err := session.Increase(groupID, variationID); err != nil {
		t.Fatalf("increase: %v", err)
	}
	if session.State() != StateChoosingHalf {
		t.Fatalf("expected choosing-half sub-state, got %s", session.State())
	}
	if err := session.ChooseHalf(enums.HalfSelectionHalf1); err != nil {
		t.Fatalf("choose half: %v", err)
	}

	// second increment on a tagged row commits directly
	if err := session.Increase(groupID, variationID); err != nil {
		t.Fatalf("tagged increase: %v", err)
	}
	if session.State() != StateValid {
		t.Fatalf("expected valid state, got %s", session.State())
	}

	if err := session.Decrease(groupID, variationID); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	if err := session.Decrease(groupID, variationID); err != nil {
		t.Fatalf("decrease to zero: %v", err)
	}

	// next increment must pause again since the tag was cleared
	if err := session.Increase(groupID, variationID); err != nil {
		t.Fatalf("increase after clear: %v", err)
	}
	if session.State() != StateChoosingHalf {
		t.Fatalf("expected choosing-half after tag clear, got %s", session.State())
	}
}

func TestChooseHalfRequiresPendingIncrement(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 0, 2)
	session, err := NewSession(fx.item, fx.view)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	err = session.ChooseHalf(enums.HalfSelectionWhole)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestBorderSwitchReplacesNeverAdds(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 0, 2)
	catupiry := models.Border{ID: uuid.New(), ItemID: fx.item.ID, Name: "Catupiry", AdditionalPrice: decimal.NewFromInt(8), Available: true}
	cheddar := models.Border{ID: uuid.New(), ItemID: fx.item.ID, Name: "Cheddar", AdditionalPrice: decimal.NewFromInt(6), Available: true}
	fx.item.IsPizza = true
	fx.item.Borders = []models.Border{catupiry, cheddar}

	session, err := NewSession(fx.item, fx.view)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := session.SelectBorder(catupiry.ID); err != nil {
		t.Fatalf("select border: %v", err)
	}
	if err := session.SelectBorder(cheddar.ID); err != nil {
		t.Fatalf("switch border: %v", err)
	}

	_, border, err := session.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if border == nil || border.BorderID != cheddar.ID {
		t.Fatalf("expected cheddar border, got %+v", border)
	}
	if !border.AdditionalPrice.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("expected border price 6, got %s", border.AdditionalPrice)
	}
}

func TestEditSessionSeedsExistingSelections(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 0, 4)
	existing := types.SelectedGroups{{
		GroupID: fx.group.ID,
		Variations: []types.SelectedVariation{
			{VariationID: fx.variations[1].ID, Quantity: 2},
		},
	}}

	session, err := NewEditSession(fx.item, fx.view, existing, nil, nil)
	if err != nil {
		t.Fatalf("edit session: %v", err)
	}

	selections, _, err := session.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(selections) != 1 || len(selections[0].Variations) != 1 {
		t.Fatalf("unexpected selections: %+v", selections)
	}
	seeded := selections[0].Variations[0]
	if seeded.VariationID != fx.variations[1].ID || seeded.Quantity != 2 {
		t.Fatalf("unexpected seeded row: %+v", seeded)
	}
	// enrichment comes from the catalog, not the stored line
	if !seeded.AdditionalPrice.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected live price 4, got %s", seeded.AdditionalPrice)
	}
}

func TestApplyReplaysPayloadThroughMachine(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, 1, 3)
	session, err := NewSession(fx.item, fx.view)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	desired := types.SelectedGroups{{
		GroupID: fx.group.ID,
		Variations: []types.SelectedVariation{
			{VariationID: fx.variations[0].ID, Quantity: 2},
			{VariationID: fx.variations[1].ID, Quantity: 1},
		},
	}}
	if err := session.Apply(desired); err != nil {
		t.Fatalf("apply: %v", err)
	}

	over := types.SelectedGroups{{
		GroupID: fx.group.ID,
		Variations: []types.SelectedVariation{
			{VariationID: fx.variations[0].ID, Quantity: 1},
		},
	}}
	if err := session.Apply(over); err == nil {
		t.Fatal("expected apply past max to fail")
	}
}
