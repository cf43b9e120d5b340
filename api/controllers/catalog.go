package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/api/responses"
	catalogsvc "github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/logger"
)

type catalogItemSummary struct {
	ID                uuid.UUID       `json:"id"`
	CategoryID        uuid.UUID       `json:"category_id"`
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	PriceFrom         bool            `json:"price_from"`
	IsPizza           bool            `json:"is_pizza"`
	AllowsCombination bool            `json:"allows_combination"`
	MaxFlavors        int             `json:"max_flavors"`
	FreeShipping      bool            `json:"free_shipping"`
}

type catalogVariation struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}

type catalogGroup struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	MinRequired  int                `json:"min_required"`
	MaxAllowed   int                `json:"max_allowed"`
	AllowPerHalf bool               `json:"allow_per_half"`
	Variations   []catalogVariation `json:"variations"`
}

type catalogBorder struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}

type catalogItemDetail struct {
	catalogItemSummary
	BorderPosition string          `json:"border_position"`
	Groups         []catalogGroup  `json:"groups"`
	Borders        []catalogBorder `json:"borders"`
}

// CatalogList exposes the available menu items.
func CatalogList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]catalogItemSummary, 0, len(items))
		for _, item := range items {
			payload = append(payload, newItemSummary(item))
		}
		responses.WriteSuccess(w, payload)
	}
}

// CatalogDetail exposes one item with its groups resolved against the
// live variation catalog.
func CatalogDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id"))
			return
		}

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newItemDetail(*item, view))
	}
}

func newItemSummary(item models.CatalogItem) catalogItemSummary {
	return catalogItemSummary{
		ID:                item.ID,
		CategoryID:        item.CategoryID,
		Name:              item.Name,
		Description:       item.Description,
		Price:             item.Price,
		PriceFrom:         item.PriceFrom,
		IsPizza:           item.IsPizza,
		AllowsCombination: item.AllowsCombination,
		MaxFlavors:        item.MaxFlavors,
		FreeShipping:      item.FreeShipping,
	}
}

func newItemDetail(item models.CatalogItem, view *catalogsvc.View) catalogItemDetail {
	groups := make([]catalogGroup, 0, len(item.Groups))
	for _, group := range item.Groups {
		variations := view.VariationsForGroup(group, item)
		rows := make([]catalogVariation, 0, len(variations))
		for _, v := range variations {
			rows = append(rows, catalogVariation{
				ID:              v.ID,
				Name:            v.Name,
				AdditionalPrice: v.AdditionalPrice,
			})
		}
		groups = append(groups, catalogGroup{
			ID:           group.ID,
			Name:         group.Name,
			MinRequired:  group.MinRequired,
			MaxAllowed:   group.MaxAllowed,
			AllowPerHalf: group.AllowPerHalf,
			Variations:   rows,
		})
	}

	borders := make([]catalogBorder, 0, len(item.Borders))
	for _, border := range item.Borders {
		if !border.Available {
			continue
		}
		borders = append(borders, catalogBorder{
			ID:              border.ID,
			Name:            border.Name,
			Description:     border.Description,
			AdditionalPrice: border.AdditionalPrice,
		})
	}

	return catalogItemDetail{
		catalogItemSummary: newItemSummary(item),
		BorderPosition:     item.BorderPosition,
		Groups:             groups,
		Borders:            borders,
	}
}
