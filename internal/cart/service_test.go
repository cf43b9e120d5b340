package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/logger"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

type stubStore struct {
	snapshots map[string]Snapshot
	saves     int
}

func newStubStore() *stubStore {
	return &stubStore{snapshots: map[string]Snapshot{}}
}

func (s *stubStore) Load(_ context.Context, sessionID string) (Snapshot, bool, error) {
	snap, ok := s.snapshots[sessionID]
	return snap, ok, nil
}

func (s *stubStore) Save(_ context.Context, sessionID string, snap Snapshot) error {
	s.snapshots[sessionID] = snap
	s.saves++
	return nil
}

func (s *stubStore) Delete(_ context.Context, sessionID string) error {
	delete(s.snapshots, sessionID)
	return nil
}

type stubCatalog struct {
	view *catalog.View
}

func (s *stubCatalog) Snapshot(context.Context) (*catalog.View, error) {
	return s.view, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cart-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func testService(t *testing.T, view *catalog.View) (Service, *stubStore) {
	t.Helper()
	store := newStubStore()
	svc, err := NewService(store, &stubCatalog{view: view}, testLogger(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestServiceAddItemAndQuote(t *testing.T) {
	t.Parallel()

	bacon := models.Variation{ID: uuid.New(), Name: "Bacon", AdditionalPrice: decimal.NewFromInt(5), Available: true}
	item := models.CatalogItem{ID: uuid.New(), CategoryID: uuid.New(), Name: "Burger", Price: decimal.NewFromInt(30), Available: true}
	group := models.VariationGroup{ID: uuid.New(), ItemID: item.ID, Name: "Extras", MinRequired: 1, MaxAllowed: 2, VariationIDs: pq.StringArray{bacon.ID.String()}}
	item.Groups = []models.VariationGroup{group}
	view := catalog.NewView([]models.CatalogItem{item}, []models.Variation{bacon})

	svc, store := testService(t, view)

	quote, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{
		ItemID:   item.ID,
		Quantity: 2,
		Selections: types.SelectedGroups{{
			GroupID: group.ID,
			Variations: []types.SelectedVariation{
				{VariationID: bacon.ID, Quantity: 1},
			},
		}},
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	if quote.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", quote.ItemCount)
	}
	if !quote.Subtotal.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected subtotal 70, got %s", quote.Subtotal)
	}
	if len(store.snapshots["sess-1"].Lines) != 1 {
		t.Fatal("snapshot must be persisted on mutation")
	}

	// the persisted snapshot rehydrates into the same priced cart
	again, err := svc.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !again.Subtotal.Equal(quote.Subtotal) {
		t.Fatalf("rehydrated subtotal %s must equal original %s", again.Subtotal, quote.Subtotal)
	}
}

func TestServiceAddItemRejectsInvalidSelection(t *testing.T) {
	t.Parallel()

	bacon := models.Variation{ID: uuid.New(), Name: "Bacon", AdditionalPrice: decimal.NewFromInt(5), Available: true}
	item := models.CatalogItem{ID: uuid.New(), CategoryID: uuid.New(), Name: "Burger", Price: decimal.NewFromInt(30), Available: true}
	group := models.VariationGroup{ID: uuid.New(), ItemID: item.ID, Name: "Extras", MinRequired: 1, MaxAllowed: 1, VariationIDs: pq.StringArray{bacon.ID.String()}}
	item.Groups = []models.VariationGroup{group}
	view := catalog.NewView([]models.CatalogItem{item}, []models.Variation{bacon})

	svc, store := testService(t, view)

	_, err := svc.AddItem(context.Background(), "sess-1", AddItemInput{ItemID: item.ID, Quantity: 1})
	if err == nil {
		t.Fatal("expected group-under-min to reject the add")
	}
	if store.saves != 0 {
		t.Fatal("a rejected add must not persist anything")
	}
}

func TestServiceAddCombination(t *testing.T) {
	t.Parallel()

	flavor1 := models.CatalogItem{ID: uuid.New(), Name: "Calabresa", Price: decimal.NewFromInt(40), IsPizza: true, AllowsCombination: true, Available: true}
	flavor2 := models.CatalogItem{ID: uuid.New(), Name: "Portuguesa", Price: decimal.NewFromInt(35), IsPizza: true, AllowsCombination: true, Available: true}
	view := catalog.NewView([]models.CatalogItem{flavor1, flavor2}, nil)

	svc, _ := testService(t, view)

	quote, err := svc.AddCombination(context.Background(), "sess-2", AddCombinationInput{
		Flavor1ID: flavor1.ID,
		Flavor2ID: flavor2.ID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add combination: %v", err)
	}

	if len(quote.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(quote.Lines))
	}
	line := quote.Lines[0]
	if !line.UnitPrice.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected max flavor price 40, got %s", line.UnitPrice)
	}
	if line.Combination == nil || line.Combination.Size != "large" {
		t.Fatalf("expected large combination, got %+v", line.Combination)
	}
}

func TestServiceKeepsFlavorAndItsCombinationSeparate(t *testing.T) {
	t.Parallel()

	flavor1 := models.CatalogItem{ID: uuid.New(), Name: "Margherita", Price: decimal.NewFromInt(30), IsPizza: true, AllowsCombination: true, Available: true}
	flavor2 := models.CatalogItem{ID: uuid.New(), Name: "Calabresa", Price: decimal.NewFromInt(45), IsPizza: true, AllowsCombination: true, Available: true}
	view := catalog.NewView([]models.CatalogItem{flavor1, flavor2}, nil)

	svc, store := testService(t, view)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-5", AddItemInput{ItemID: flavor1.ID, Quantity: 1}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	quote, err := svc.AddCombination(ctx, "sess-5", AddCombinationInput{
		Flavor1ID: flavor1.ID,
		Flavor2ID: flavor2.ID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add combination: %v", err)
	}

	if len(quote.Lines) != 2 {
		t.Fatalf("plain flavor and its combination must stay separate, got %d lines", len(quote.Lines))
	}
	if !quote.Lines[0].UnitPrice.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("plain line price changed: %s", quote.Lines[0].UnitPrice)
	}
	if !quote.Lines[1].UnitPrice.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("combined line must price at the larger flavor, got %s", quote.Lines[1].UnitPrice)
	}
	if got := len(store.snapshots["sess-5"].Lines); got != 2 {
		t.Fatalf("snapshot must keep both lines, got %d", got)
	}
}

func TestServiceRewritesSnapshotAfterDrops(t *testing.T) {
	t.Parallel()

	item := models.CatalogItem{ID: uuid.New(), Name: "Burger", Price: decimal.NewFromInt(30), Available: true}
	view := catalog.NewView([]models.CatalogItem{item}, nil)

	svc, store := testService(t, view)
	store.snapshots["sess-3"] = Snapshot{Lines: []SnapshotLine{
		{ItemID: item.ID, Quantity: 1},
		{ItemID: uuid.New(), Quantity: 1},
	}}

	quote, err := svc.Get(context.Background(), "sess-3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(quote.Lines) != 1 {
		t.Fatalf("surviving line must remain, got %d", len(quote.Lines))
	}
	saved := store.snapshots["sess-3"]
	if len(saved.Lines) != 1 || saved.Lines[0].ItemID != item.ID {
		t.Fatalf("stored snapshot must keep the surviving line, got %+v", saved.Lines)
	}

	again, err := svc.Get(context.Background(), "sess-3")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if len(again.Lines) != 1 {
		t.Fatalf("consecutive reads must agree, got %d lines", len(again.Lines))
	}
}

func TestServiceIncrementDecrementRemove(t *testing.T) {
	t.Parallel()

	item := models.CatalogItem{ID: uuid.New(), Name: "Burger", Price: decimal.NewFromInt(10), Available: true}
	view := catalog.NewView([]models.CatalogItem{item}, nil)

	svc, _ := testService(t, view)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-4", AddItemInput{ItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	quote, err := svc.IncrementLine(ctx, "sess-4", item.ID)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if quote.ItemCount != 2 {
		t.Fatalf("expected count 2, got %d", quote.ItemCount)
	}

	quote, err = svc.DecrementLine(ctx, "sess-4", item.ID)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if quote.ItemCount != 1 {
		t.Fatalf("expected count 1, got %d", quote.ItemCount)
	}

	quote, err = svc.RemoveLine(ctx, "sess-4", item.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(quote.Lines) != 0 {
		t.Fatal("expected empty cart after remove")
	}

	if _, err := svc.RemoveLine(ctx, "sess-4", item.ID); err == nil {
		t.Fatal("removing a missing line must error")
	}
}

func TestServicePreviewLineDoesNotPersist(t *testing.T) {
	t.Parallel()

	item := models.CatalogItem{ID: uuid.New(), Name: "Burger", Price: decimal.NewFromInt(30), Available: true}
	view := catalog.NewView([]models.CatalogItem{item}, nil)

	svc, store := testService(t, view)

	line, err := svc.PreviewLine(context.Background(), AddItemInput{ItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !line.LineTotal.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected line total 60, got %s", line.LineTotal)
	}
	if store.saves != 0 {
		t.Fatal("preview must not persist a snapshot")
	}
}

func TestServicePreviewCombination(t *testing.T) {
	t.Parallel()

	flavor1 := models.CatalogItem{ID: uuid.New(), Name: "Calabresa", Price: decimal.NewFromInt(40), IsPizza: true, AllowsCombination: true, Available: true}
	flavor2 := models.CatalogItem{ID: uuid.New(), Name: "Portuguesa", Price: decimal.NewFromInt(35), IsPizza: true, AllowsCombination: true, FreeShipping: true, Available: true}
	view := catalog.NewView([]models.CatalogItem{flavor1, flavor2}, nil)

	svc, store := testService(t, view)

	preview, err := svc.PreviewCombination(context.Background(), flavor1.ID, flavor2.ID)
	if err != nil {
		t.Fatalf("preview combination: %v", err)
	}
	if !preview.Price.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected max price 40, got %s", preview.Price)
	}
	if preview.FreeShipping {
		t.Fatal("free shipping requires both flavors to qualify")
	}
	if store.saves != 0 {
		t.Fatal("preview must not persist a snapshot")
	}
}
