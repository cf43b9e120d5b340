package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

type stubLookup map[uuid.UUID]decimal.Decimal

func (s stubLookup) PriceOf(id uuid.UUID) decimal.Decimal {
	if price, ok := s[id]; ok {
		return price
	}
	return decimal.Zero
}

func TestLineTotalStandardWithVariation(t *testing.T) {
	t.Parallel()

	// base 30 plus one variation of 5, quantity 2
	line := Line{
		Kind:      enums.LineKindStandard,
		UnitPrice: decimal.NewFromInt(30),
		Quantity:  2,
		Selections: types.SelectedGroups{{
			GroupID: uuid.New(),
			Variations: []types.SelectedVariation{
				{VariationID: uuid.New(), Quantity: 1, AdditionalPrice: decimal.NewFromInt(5)},
			},
		}},
	}

	if got := LineTotal(line, nil); !got.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected 70, got %s", got)
	}
}

func TestLineTotalPriceFromContributesZero(t *testing.T) {
	t.Parallel()

	line := Line{
		Kind:      enums.LineKindStandard,
		UnitPrice: decimal.NewFromInt(42),
		PriceFrom: true,
		Quantity:  1,
	}

	if got := LineTotal(line, nil); !got.IsZero() {
		t.Fatalf("expected 0 for price-from item, got %s", got)
	}
}

func TestLineTotalHalfPizzaWholeDoubles(t *testing.T) {
	t.Parallel()

	// combined price 45, one whole-targeted variation of 4
	line := Line{
		Kind:      enums.LineKindHalfPizza,
		UnitPrice: decimal.NewFromInt(45),
		Quantity:  1,
		Selections: types.SelectedGroups{{
			GroupID: uuid.New(),
			Variations: []types.SelectedVariation{
				{VariationID: uuid.New(), Quantity: 1, AdditionalPrice: decimal.NewFromInt(4), Half: enums.HalfSelectionWhole},
			},
		}},
	}

	if got := LineTotal(line, nil); !got.Equal(decimal.NewFromInt(53)) {
		t.Fatalf("expected 53, got %s", got)
	}
}

func TestLineTotalHalfPizzaSingleHalfNotDoubled(t *testing.T) {
	t.Parallel()

	line := Line{
		Kind:      enums.LineKindHalfPizza,
		UnitPrice: decimal.NewFromInt(40),
		Quantity:  1,
		Selections: types.SelectedGroups{{
			GroupID: uuid.New(),
			Variations: []types.SelectedVariation{
				{VariationID: uuid.New(), Quantity: 2, AdditionalPrice: decimal.NewFromInt(3), Half: enums.HalfSelectionHalf1},
			},
		}},
	}

	if got := LineTotal(line, nil); !got.Equal(decimal.NewFromInt(46)) {
		t.Fatalf("expected 46, got %s", got)
	}
}

func TestLineTotalFallsBackToLookup(t *testing.T) {
	t.Parallel()

	variationID := uuid.New()
	lookup := stubLookup{variationID: decimal.RequireFromString("2.50")}

	line := Line{
		Kind:      enums.LineKindStandard,
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  1,
		Selections: types.SelectedGroups{{
			GroupID: uuid.New(),
			Variations: []types.SelectedVariation{
				{VariationID: variationID, Quantity: 2},
			},
		}},
	}

	if got := LineTotal(line, lookup); !got.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected 15, got %s", got)
	}

	// unknown id resolves to zero, never errors
	line.Selections[0].Variations[0].VariationID = uuid.New()
	if got := LineTotal(line, lookup); !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected 10 with stale variation, got %s", got)
	}
}

func TestLineTotalBorderAddsOnce(t *testing.T) {
	t.Parallel()

	line := Line{
		Kind:      enums.LineKindStandard,
		UnitPrice: decimal.NewFromInt(20),
		Quantity:  3,
		Border: &types.BorderSnapshot{
			BorderID:        uuid.New(),
			Name:            "Cheese border",
			AdditionalPrice: decimal.NewFromInt(6),
		},
	}

	if got := LineTotal(line, nil); !got.Equal(decimal.NewFromInt(78)) {
		t.Fatalf("expected 78, got %s", got)
	}
}

func TestLineTotalNoDriftOverManyLines(t *testing.T) {
	t.Parallel()

	// fifty lines priced 0.13 each must sum exactly, no float drift
	price := decimal.RequireFromString("0.13")
	total := decimal.Zero
	for i := 0; i < 50; i++ {
		line := Line{Kind: enums.LineKindStandard, UnitPrice: price, Quantity: 1}
		total = total.Add(LineTotal(line, nil))
	}

	if want := decimal.RequireFromString("6.50"); !total.Equal(want) {
		t.Fatalf("expected %s, got %s", want, total)
	}
}
