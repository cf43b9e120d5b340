package cart

import (
	"github.com/google/uuid"

	"github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
	"github.com/codclick-aut6/clickprato6-sub000/internal/combo"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// Rehydrate rebuilds an in-memory cart from a persisted snapshot against a
// fresh catalog view. Lines whose item (or either combined flavor) is
// missing or unavailable are silently dropped; the returned count tells the
// caller how many, so it can rewrite the durable snapshot when non-zero.
// Surviving lines stay intact.
func Rehydrate(snap Snapshot, view *catalog.View) (*Cart, int) {
	cart := &Cart{Coupon: snap.Coupon}
	dropped := 0

	for _, sl := range snap.Lines {
		line, ok := rebuildLine(sl, view)
		if !ok {
			dropped++
			continue
		}
		cart.Lines = append(cart.Lines, line)
	}

	if len(cart.Lines) == 0 {
		cart.Coupon = nil
	}
	return cart, dropped
}

func rebuildLine(sl SnapshotLine, view *catalog.View) (Line, bool) {
	if sl.IsHalfPizza && sl.Combination != nil {
		return rebuildCombinedLine(sl, view)
	}

	item, ok := view.Item(sl.ItemID)
	if !ok || !item.Available {
		return Line{}, false
	}

	return Line{
		ItemID:       item.ID,
		Name:         item.Name,
		Kind:         enums.LineKindStandard,
		UnitPrice:    item.Price,
		PriceFrom:    item.PriceFrom,
		FreeShipping: item.FreeShipping,
		Quantity:     sl.Quantity,
		Selections:   rebuildSelections(sl.Selections, *item, view),
		Border:       resolveBorder(sl.BorderID, item.Borders),
	}, true
}

func rebuildCombinedLine(sl SnapshotLine, view *catalog.View) (Line, bool) {
	flavor1, ok1 := view.Item(sl.Combination.Flavor1ID)
	flavor2, ok2 := view.Item(sl.Combination.Flavor2ID)
	if !ok1 || !ok2 || !flavor1.Available || !flavor2.Available {
		return Line{}, false
	}

	combined, err := combo.Combine(*flavor1, *flavor2, view)
	if err != nil {
		return Line{}, false
	}
	item := combined.Item()
	combination := combined.Combination

	return Line{
		ItemID:       item.ID,
		Name:         combined.Name,
		Kind:         enums.LineKindHalfPizza,
		UnitPrice:    combined.Price,
		FreeShipping: combined.FreeShipping,
		Quantity:     sl.Quantity,
		Selections:   rebuildSelections(sl.Selections, item, view),
		Border:       resolveBorder(sl.BorderID, item.Borders),
		Combination:  &combination,
	}, true
}

// rebuildSelections re-attaches stored rows to live catalog data. Stale
// variation ids keep their row with a zero price rather than failing.
func rebuildSelections(rows []SnapshotSelection, item models.CatalogItem, view *catalog.View) types.SelectedGroups {
	groupNames := make(map[uuid.UUID]string, len(item.Groups))
	for _, group := range item.Groups {
		groupNames[group.ID] = group.Name
	}

	byGroup := map[uuid.UUID]*types.SelectedGroup{}
	order := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if row.Quantity <= 0 {
			continue
		}
		group, ok := byGroup[row.GroupID]
		if !ok {
			group = &types.SelectedGroup{GroupID: row.GroupID, GroupName: groupNames[row.GroupID]}
			byGroup[row.GroupID] = group
			order = append(order, row.GroupID)
		}

		name := ""
		if live, found := view.Variation(row.VariationID); found {
			name = live.Name
		}
		group.Variations = append(group.Variations, types.SelectedVariation{
			VariationID:     row.VariationID,
			Name:            name,
			Quantity:        row.Quantity,
			AdditionalPrice: view.PriceOf(row.VariationID),
			Half:            row.Half,
		})
	}

	if len(order) == 0 {
		return nil
	}
	out := make(types.SelectedGroups, 0, len(order))
	for _, id := range order {
		out = append(out, *byGroup[id])
	}
	return out
}

func resolveBorder(borderID *uuid.UUID, borders []models.Border) *types.BorderSnapshot {
	if borderID == nil {
		return nil
	}
	for _, border := range borders {
		if border.ID == *borderID && border.Available {
			return &types.BorderSnapshot{
				BorderID:        border.ID,
				Name:            border.Name,
				AdditionalPrice: border.AdditionalPrice,
			}
		}
	}
	return nil
}
