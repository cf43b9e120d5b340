package catalog

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

const defaultGroupMessage = "Choose between {min} and {max} options ({count} selected)"

// View is a read-only in-memory index over one catalog snapshot. It never
// mutates its inputs and performs no I/O; every lookup fails closed so stale
// ids coming from persisted carts stay harmless.
type View struct {
	items      []models.CatalogItem
	itemIndex  map[uuid.UUID]*models.CatalogItem
	variations map[uuid.UUID]*models.Variation
}

// NewView indexes the provided snapshot.
func NewView(items []models.CatalogItem, variations []models.Variation) *View {
	v := &View{
		items:      items,
		itemIndex:  make(map[uuid.UUID]*models.CatalogItem, len(items)),
		variations: make(map[uuid.UUID]*models.Variation, len(variations)),
	}
	for i := range items {
		v.itemIndex[items[i].ID] = &items[i]
	}
	for i := range variations {
		v.variations[variations[i].ID] = &variations[i]
	}
	return v
}

// Items returns the snapshot's items in catalog order.
func (v *View) Items() []models.CatalogItem {
	return v.items
}

// Item resolves one catalog item by id.
func (v *View) Item(id uuid.UUID) (*models.CatalogItem, bool) {
	item, ok := v.itemIndex[id]
	return item, ok
}

// Variation resolves one variation by id regardless of availability.
func (v *View) Variation(id uuid.UUID) (*models.Variation, bool) {
	row, ok := v.variations[id]
	return row, ok
}

// PriceOf returns the variation's additional price, or zero when the id is
// unknown. An unknown id never errors.
func (v *View) PriceOf(variationID uuid.UUID) decimal.Decimal {
	row, ok := v.variations[variationID]
	if !ok {
		return decimal.Zero
	}
	return row.AdditionalPrice
}

// VariationsForGroup resolves a group's variation ids against the pool,
// keeping only rows that are available and applicable to the item's category.
func (v *View) VariationsForGroup(group models.VariationGroup, item models.CatalogItem) []models.Variation {
	out := make([]models.Variation, 0, len(group.VariationIDs))
	for _, raw := range group.VariationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		row, ok := v.variations[id]
		if !ok || !row.Available {
			continue
		}
		if !appliesToCategory(row.CategoryIDs, item.CategoryID) {
			continue
		}
		out = append(out, *row)
	}
	return out
}

// GroupStatus reports the aggregate selection count of one group against its
// cardinality bounds.
type GroupStatus struct {
	Total int
	Min   int
	Max   int
	Valid bool
}

// StatusOf computes the group's aggregate validity for the given selection.
func (v *View) StatusOf(group models.VariationGroup, selection types.SelectedGroup) GroupStatus {
	total := selection.TotalQuantity()
	return GroupStatus{
		Total: total,
		Min:   group.MinRequired,
		Max:   group.MaxAllowed,
		Valid: total >= group.MinRequired && total <= group.MaxAllowed,
	}
}

// MessageFor renders the group's custom message template for the selection.
// {min}, {max} and {count} placeholders are substituted.
func (v *View) MessageFor(group models.VariationGroup, selection types.SelectedGroup) string {
	template := group.CustomMessage
	if strings.TrimSpace(template) == "" {
		template = defaultGroupMessage
	}
	status := v.StatusOf(group, selection)
	replacer := strings.NewReplacer(
		"{min}", strconv.Itoa(status.Min),
		"{max}", strconv.Itoa(status.Max),
		"{count}", strconv.Itoa(status.Total),
	)
	return replacer.Replace(template)
}

func appliesToCategory(categoryIDs []string, categoryID uuid.UUID) bool {
	if len(categoryIDs) == 0 {
		return true
	}
	want := categoryID.String()
	for _, raw := range categoryIDs {
		if strings.EqualFold(strings.TrimSpace(raw), want) {
			return true
		}
	}
	return false
}
