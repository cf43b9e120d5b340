package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
)

// SelectedVariation is one chosen add-on row inside a selected group.
// Name and AdditionalPrice are captured at confirm time from the catalog.
type SelectedVariation struct {
	VariationID     uuid.UUID           `json:"variation_id"`
	Name            string              `json:"name"`
	Quantity        int                 `json:"quantity"`
	AdditionalPrice decimal.Decimal     `json:"additional_price"`
	Half            enums.HalfSelection `json:"half,omitempty"`
}

// SelectedGroup carries the confirmed rows of one variation group.
// Zero-quantity rows are dropped before a group is attached to a line.
type SelectedGroup struct {
	GroupID    uuid.UUID           `json:"group_id"`
	GroupName  string              `json:"group_name"`
	Variations []SelectedVariation `json:"variations"`
}

// SelectedGroups is the jsonb payload persisted on cart and order lines.
type SelectedGroups []SelectedGroup

// IdentityKey returns a canonical string over group/variation ids,
// quantities and half targets. Captured names and prices are excluded so a
// catalog rename does not split otherwise identical lines.
func (g SelectedGroups) IdentityKey() string {
	groups := make([]string, 0, len(g))
	for _, group := range g {
		rows := make([]string, 0, len(group.Variations))
		for _, v := range group.Variations {
			if v.Quantity <= 0 {
				continue
			}
			rows = append(rows, fmt.Sprintf("%s:%d:%s", v.VariationID, v.Quantity, v.Half))
		}
		if len(rows) == 0 {
			continue
		}
		sort.Strings(rows)
		groups = append(groups, group.GroupID.String()+"["+strings.Join(rows, ",")+"]")
	}
	sort.Strings(groups)
	return strings.Join(groups, ";")
}

// TotalQuantity sums the row quantities of one group.
func (g SelectedGroup) TotalQuantity() int {
	total := 0
	for _, v := range g.Variations {
		total += v.Quantity
	}
	return total
}

// FlavorRef points at one flavor of a combined pizza.
type FlavorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Combination records the flavor pair behind a half-and-half line.
type Combination struct {
	Flavor1 FlavorRef `json:"flavor1"`
	Flavor2 FlavorRef `json:"flavor2"`
	Size    string    `json:"size"`
}

// BorderSnapshot captures the single chosen border of a pizza line.
type BorderSnapshot struct {
	BorderID        uuid.UUID       `json:"border_id"`
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}
