package combo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

const combinedSize = "large"

type catalogView interface {
	VariationsForGroup(group models.VariationGroup, item models.CatalogItem) []models.Variation
}

// Combined is the synthetic item produced by pairing two flavors. It prices
// as a single entity at the larger flavor's large-tier price and inherits
// the triggering flavor's half-pizza groups and borders.
type Combined struct {
	Name         string
	CategoryID   uuid.UUID
	Price        decimal.Decimal
	FreeShipping bool
	Combination  types.Combination
	Groups       []models.VariationGroup
	Borders      []models.Border
}

// Item renders the combination as a catalog item shape so downstream
// selection and pricing treat it like any other item. The id is the
// triggering flavor's id.
func (c Combined) Item() models.CatalogItem {
	return models.CatalogItem{
		ID:                c.Combination.Flavor1.ID,
		CategoryID:        c.CategoryID,
		Name:              c.Name,
		Price:             c.Price,
		IsPizza:           true,
		AllowsCombination: true,
		FreeShipping:      c.FreeShipping,
		Available:         true,
		Groups:            c.Groups,
		Borders:           c.Borders,
	}
}

// Degenerate reports whether both halves are the same flavor. Permitted,
// but worth a debug log at the call site.
func (c Combined) Degenerate() bool {
	return c.Combination.Flavor1.ID == c.Combination.Flavor2.ID
}

// LargeTierPrice derives the flavor's large-size price. The first variation
// across the item's groups whose name contains "large" supplies it;
// without one the base price is used.
func LargeTierPrice(item models.CatalogItem, view catalogView) decimal.Decimal {
	if view != nil {
		for _, group := range item.Groups {
			for _, variation := range view.VariationsForGroup(group, item) {
				if strings.Contains(strings.ToLower(variation.Name), combinedSize) {
					return variation.AdditionalPrice
				}
			}
		}
	}
	return item.Price
}

// Combine synthesizes one half-and-half item from two combination-eligible
// flavors. The unit price is the max of the two large-tier prices, never
// the sum, and free shipping requires both flavors to carry it.
func Combine(flavor1, flavor2 models.CatalogItem, view catalogView) (Combined, error) {
	if !flavor1.AllowsCombination {
		return Combined{}, pkgerrors.New(pkgerrors.CodeValidation, "first flavor does not allow combination")
	}
	if !flavor2.AllowsCombination {
		return Combined{}, pkgerrors.New(pkgerrors.CodeValidation, "second flavor does not allow combination")
	}
	if !flavor1.Available || !flavor2.Available {
		return Combined{}, pkgerrors.New(pkgerrors.CodeValidation, "both flavors must be available")
	}

	price1 := LargeTierPrice(flavor1, view)
	price2 := LargeTierPrice(flavor2, view)
	price := price1
	if price2.GreaterThan(price) {
		price = price2
	}

	groups := make([]models.VariationGroup, 0, len(flavor1.Groups))
	for _, group := range flavor1.Groups {
		if group.ApplyToHalfPizza {
			groups = append(groups, group)
		}
	}

	return Combined{
		Name:         fmt.Sprintf("Half-and-Half (Large) — ½ %s + ½ %s", flavor1.Name, flavor2.Name),
		CategoryID:   flavor1.CategoryID,
		Price:        price,
		FreeShipping: flavor1.FreeShipping && flavor2.FreeShipping,
		Combination: types.Combination{
			Flavor1: types.FlavorRef{ID: flavor1.ID, Name: flavor1.Name},
			Flavor2: types.FlavorRef{ID: flavor2.ID, Name: flavor2.Name},
			Size:    combinedSize,
		},
		Groups:  groups,
		Borders: flavor1.Borders,
	}, nil
}
