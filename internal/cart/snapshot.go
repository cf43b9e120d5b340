package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// SnapshotSelection stores one selected variation row by id only. Names and
// prices are re-resolved from the live catalog on rehydration.
type SnapshotSelection struct {
	GroupID     uuid.UUID           `json:"group_id"`
	VariationID uuid.UUID           `json:"variation_id"`
	Quantity    int                 `json:"quantity"`
	Half        enums.HalfSelection `json:"half,omitempty"`
}

// SnapshotCombination keeps only the flavor pair ids.
type SnapshotCombination struct {
	Flavor1ID uuid.UUID `json:"flavor1_id"`
	Flavor2ID uuid.UUID `json:"flavor2_id"`
}

// SnapshotLine is the minimal durable form of one cart line.
type SnapshotLine struct {
	ItemID      uuid.UUID            `json:"item_id"`
	Quantity    int                  `json:"quantity"`
	Selections  []SnapshotSelection  `json:"selections,omitempty"`
	BorderID    *uuid.UUID           `json:"border_id,omitempty"`
	IsHalfPizza bool                 `json:"is_half_pizza,omitempty"`
	Combination *SnapshotCombination `json:"combination,omitempty"`
}

// Snapshot is the serialized cart persisted between sessions.
type Snapshot struct {
	Lines   []SnapshotLine `json:"lines"`
	Coupon  *types.Coupon  `json:"coupon,omitempty"`
	SavedAt time.Time      `json:"saved_at"`
}

// Empty reports whether the snapshot carries no lines.
func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

// SnapshotOf serializes the cart to its minimal durable form.
func SnapshotOf(c *Cart) Snapshot {
	snap := Snapshot{SavedAt: time.Now().UTC()}
	for _, line := range c.Lines {
		sl := SnapshotLine{
			ItemID:      line.ItemID,
			Quantity:    line.Quantity,
			IsHalfPizza: line.Kind == enums.LineKindHalfPizza,
		}
		for _, group := range line.Selections {
			for _, v := range group.Variations {
				if v.Quantity <= 0 {
					continue
				}
				sl.Selections = append(sl.Selections, SnapshotSelection{
					GroupID:     group.GroupID,
					VariationID: v.VariationID,
					Quantity:    v.Quantity,
					Half:        v.Half,
				})
			}
		}
		if line.Border != nil {
			borderID := line.Border.BorderID
			sl.BorderID = &borderID
		}
		if line.Combination != nil {
			sl.Combination = &SnapshotCombination{
				Flavor1ID: line.Combination.Flavor1.ID,
				Flavor2ID: line.Combination.Flavor2.ID,
			}
		}
		snap.Lines = append(snap.Lines, sl)
	}
	snap.Coupon = c.Coupon
	return snap
}
