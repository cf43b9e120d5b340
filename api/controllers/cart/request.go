package cart

import (
	cartdto "github.com/codclick-aut6/clickprato6-sub000/api/controllers/cart/dto"
	cartsvc "github.com/codclick-aut6/clickprato6-sub000/internal/cart"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

func toSelectedGroups(groups []cartdto.SelectionGroup) types.SelectedGroups {
	selections := make(types.SelectedGroups, 0, len(groups))
	for _, group := range groups {
		rows := make([]types.SelectedVariation, 0, len(group.Variations))
		for _, row := range group.Variations {
			rows = append(rows, types.SelectedVariation{
				VariationID: row.VariationID,
				Quantity:    row.Quantity,
				Half:        enums.HalfSelection(row.Half),
			})
		}
		selections = append(selections, types.SelectedGroup{
			GroupID:    group.GroupID,
			Variations: rows,
		})
	}
	return selections
}

func toAddItemInput(payload cartdto.AddItemRequest) cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ItemID:     payload.ItemID,
		Quantity:   payload.Quantity,
		Selections: toSelectedGroups(payload.Selections),
		BorderID:   payload.BorderID,
	}
}

func toAddCombinationInput(payload cartdto.AddCombinationRequest) cartsvc.AddCombinationInput {
	return cartsvc.AddCombinationInput{
		Flavor1ID:  payload.Flavor1ID,
		Flavor2ID:  payload.Flavor2ID,
		Quantity:   payload.Quantity,
		Selections: toSelectedGroups(payload.Selections),
		BorderID:   payload.BorderID,
	}
}

func toUpdateLineInput(payload cartdto.UpdateLineRequest) cartsvc.UpdateLineInput {
	return cartsvc.UpdateLineInput{
		Selections: toSelectedGroups(payload.Selections),
		BorderID:   payload.BorderID,
		Quantity:   payload.Quantity,
	}
}

func toCoupon(payload cartdto.ApplyCouponRequest) *types.Coupon {
	return &types.Coupon{
		Code:  payload.Code,
		Type:  enums.CouponType(payload.Type),
		Value: payload.Value,
	}
}
