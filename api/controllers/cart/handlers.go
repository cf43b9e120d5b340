package cart

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	cartdto "github.com/codclick-aut6/clickprato6-sub000/api/controllers/cart/dto"
	"github.com/codclick-aut6/clickprato6-sub000/api/middleware"
	"github.com/codclick-aut6/clickprato6-sub000/api/responses"
	"github.com/codclick-aut6/clickprato6-sub000/api/validators"
	cartsvc "github.com/codclick-aut6/clickprato6-sub000/internal/cart"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/logger"
)

// CartFetch returns the rehydrated, repriced cart for the session.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := middleware.SessionIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// CartAddItem adds a standard item line after running group validation.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := middleware.SessionIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.AddItem(r.Context(), sessionID, toAddItemInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// CartAddCombination adds a half-and-half pizza line.
func CartAddCombination(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := middleware.SessionIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddCombinationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.AddCombination(r.Context(), sessionID, toAddCombinationInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// CartPreviewLine prices a candidate configuration without mutating the cart.
func CartPreviewLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := svc.PreviewLine(r.Context(), toAddItemInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, line)
	}
}

// CartPreviewCombination quotes a half-and-half pairing without mutating
// the cart.
func CartPreviewCombination(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartdto.PreviewCombinationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.PreviewCombination(r.Context(), payload.Flavor1ID, payload.Flavor2ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, preview)
	}
}

// CartIncrementLine bumps the first line matching the item id.
func CartIncrementLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutateByItemID(svc, logg, func(svc cartsvc.Service) lineMutation {
		return svc.IncrementLine
	})
}

// CartDecrementLine lowers the quantity, removing the line at zero.
func CartDecrementLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutateByItemID(svc, logg, func(svc cartsvc.Service) lineMutation {
		return svc.DecrementLine
	})
}

// CartRemoveLine drops the first line matching the item id.
func CartRemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutateByItemID(svc, logg, func(svc cartsvc.Service) lineMutation {
		return svc.RemoveLine
	})
}

// CartUpdateLine replaces the configuration of the line at the given index.
func CartUpdateLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := middleware.SessionIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "lineIndex"))
		if err != nil || index < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid line index"))
			return
		}

		var payload cartdto.UpdateLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.UpdateLine(r.Context(), sessionID, index, toUpdateLineInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// CartApplyCoupon attaches an already validated coupon descriptor.
func CartApplyCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := middleware.SessionIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.ApplyCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.ApplyCoupon(r.Context(), sessionID, toCoupon(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// CartClear empties the session cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := middleware.SessionIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

type lineMutation func(ctx context.Context, sessionID string, itemID uuid.UUID) (*cartsvc.Quote, error)

func mutateByItemID(svc cartsvc.Service, logg *logger.Logger, pick func(cartsvc.Service) lineMutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := middleware.SessionIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id"))
			return
		}

		quote, err := pick(svc)(r.Context(), sessionID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
