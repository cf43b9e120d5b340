package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/api/middleware"
	cartsvc "github.com/codclick-aut6/clickprato6-sub000/internal/cart"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

type stubCartService struct {
	quote        *cartsvc.Quote
	err          error
	lastAdd      cartsvc.AddItemInput
	lastCombo    cartsvc.AddCombinationInput
	lastItemID   uuid.UUID
	lastCoupon   *types.Coupon
	clearedCount int
}

func (s *stubCartService) Get(ctx context.Context, sessionID string) (*cartsvc.Quote, error) {
	return s.quote, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.Quote, error) {
	s.lastAdd = input
	return s.quote, s.err
}

func (s *stubCartService) AddCombination(ctx context.Context, sessionID string, input cartsvc.AddCombinationInput) (*cartsvc.Quote, error) {
	s.lastCombo = input
	return s.quote, s.err
}

func (s *stubCartService) PreviewLine(ctx context.Context, input cartsvc.AddItemInput) (*cartsvc.QuoteLine, error) {
	s.lastAdd = input
	if s.err != nil {
		return nil, s.err
	}
	return &cartsvc.QuoteLine{ItemID: input.ItemID, Quantity: input.Quantity}, nil
}

func (s *stubCartService) PreviewCombination(ctx context.Context, flavor1ID, flavor2ID uuid.UUID) (*cartsvc.CombinationPreview, error) {
	s.lastCombo = cartsvc.AddCombinationInput{Flavor1ID: flavor1ID, Flavor2ID: flavor2ID}
	if s.err != nil {
		return nil, s.err
	}
	return &cartsvc.CombinationPreview{Name: "Half-and-Half (Large)"}, nil
}

func (s *stubCartService) IncrementLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*cartsvc.Quote, error) {
	s.lastItemID = itemID
	return s.quote, s.err
}

func (s *stubCartService) DecrementLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*cartsvc.Quote, error) {
	s.lastItemID = itemID
	return s.quote, s.err
}

func (s *stubCartService) RemoveLine(ctx context.Context, sessionID string, itemID uuid.UUID) (*cartsvc.Quote, error) {
	s.lastItemID = itemID
	return s.quote, s.err
}

func (s *stubCartService) UpdateLine(ctx context.Context, sessionID string, index int, input cartsvc.UpdateLineInput) (*cartsvc.Quote, error) {
	return s.quote, s.err
}

func (s *stubCartService) ApplyCoupon(ctx context.Context, sessionID string, coupon *types.Coupon) (*cartsvc.Quote, error) {
	s.lastCoupon = coupon
	return s.quote, s.err
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) error {
	s.clearedCount++
	return s.err
}

func sessionRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "session-1"))
}

func emptyQuote() *cartsvc.Quote {
	return &cartsvc.Quote{
		Lines:          []cartsvc.QuoteLine{},
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		FinalTotal:     decimal.Zero,
	}
}

func TestCartFetchSuccess(t *testing.T) {
	quote := emptyQuote()
	quote.ItemCount = 2
	handler := CartFetch(&stubCartService{quote: quote}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.Quote `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 2 {
		t.Fatalf("unexpected item count: %d", envelope.Data.ItemCount)
	}
}

func TestCartFetchMissingSessionContext(t *testing.T) {
	handler := CartFetch(&stubCartService{quote: emptyQuote()}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemDecodesSelections(t *testing.T) {
	svc := &stubCartService{quote: emptyQuote()}
	handler := CartAddItem(svc, nil)

	itemID := uuid.New()
	groupID := uuid.New()
	variationID := uuid.New()
	body := `{
		"item_id": "` + itemID.String() + `",
		"quantity": 2,
		"selections": [
			{"group_id": "` + groupID.String() + `", "variations": [
				{"variation_id": "` + variationID.String() + `", "quantity": 1, "half": "half1"}
			]}
		]
	}`

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastAdd.ItemID != itemID || svc.lastAdd.Quantity != 2 {
		t.Fatalf("unexpected input: %+v", svc.lastAdd)
	}
	if len(svc.lastAdd.Selections) != 1 || svc.lastAdd.Selections[0].GroupID != groupID {
		t.Fatalf("selections not mapped: %+v", svc.lastAdd.Selections)
	}
	if svc.lastAdd.Selections[0].Variations[0].Half != "half1" {
		t.Fatalf("half target not mapped: %+v", svc.lastAdd.Selections[0].Variations[0])
	}
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	handler := CartAddItem(&stubCartService{quote: emptyQuote()}, nil)

	body := `{"item_id": "` + uuid.NewString() + `", "surprise": true}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemValidationErrorPassesThrough(t *testing.T) {
	svcErr := pkgerrors.New(pkgerrors.CodeValidation, "Choose between 1 and 3 options (0 selected)")
	handler := CartAddItem(&stubCartService{err: svcErr}, nil)

	body := `{"item_id": "` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Choose between 1 and 3 options") {
		t.Fatalf("group message not surfaced: %s", resp.Body.String())
	}
}

func TestCartAddCombinationMapsFlavors(t *testing.T) {
	svc := &stubCartService{quote: emptyQuote()}
	handler := CartAddCombination(svc, nil)

	flavor1 := uuid.New()
	flavor2 := uuid.New()
	body := `{"flavor1_id": "` + flavor1.String() + `", "flavor2_id": "` + flavor2.String() + `"}`

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/combinations", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCombo.Flavor1ID != flavor1 || svc.lastCombo.Flavor2ID != flavor2 {
		t.Fatalf("flavors not mapped: %+v", svc.lastCombo)
	}
}

func TestCartPreviewCombinationDoesNotNeedSession(t *testing.T) {
	svc := &stubCartService{}
	handler := CartPreviewCombination(svc, nil)

	flavor1 := uuid.New()
	flavor2 := uuid.New()
	body := `{"flavor1_id": "` + flavor1.String() + `", "flavor2_id": "` + flavor2.String() + `"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/combinations/preview", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCombo.Flavor1ID != flavor1 || svc.lastCombo.Flavor2ID != flavor2 {
		t.Fatalf("flavors not forwarded: %+v", svc.lastCombo)
	}
}

func TestCartApplyCouponMapsDescriptor(t *testing.T) {
	svc := &stubCartService{quote: emptyQuote()}
	handler := CartApplyCoupon(svc, nil)

	body := `{"code": "PIZZA10", "type": "percentage", "value": "10"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/coupon", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastCoupon == nil || svc.lastCoupon.Code != "PIZZA10" {
		t.Fatalf("coupon not mapped: %+v", svc.lastCoupon)
	}
	if !svc.lastCoupon.Value.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("coupon value not mapped: %s", svc.lastCoupon.Value)
	}
}
