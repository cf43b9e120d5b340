package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/codclick-aut6/clickprato6-sub000/api/middleware"
	ordersvc "github.com/codclick-aut6/clickprato6-sub000/internal/orders"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
)

type stubOrderService struct {
	order      *models.Order
	list       []models.Order
	err        error
	lastInput  ordersvc.CheckoutInput
	lastFilter ordersvc.ListFilter
	lastStatus enums.OrderStatus
}

func (s *stubOrderService) Finalize(ctx context.Context, input ordersvc.CheckoutInput) (*models.Order, error) {
	s.lastInput = input
	return s.order, s.err
}

func (s *stubOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) ListOrders(ctx context.Context, filter ordersvc.ListFilter) ([]models.Order, error) {
	s.lastFilter = filter
	return s.list, s.err
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	s.lastStatus = status
	return s.order, s.err
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:             uuid.New(),
		OrderNumber:    42,
		Status:         enums.OrderStatusPending,
		CustomerName:   "Ana Souza",
		CustomerPhone:  "11987654321",
		PaymentMethod:  "pix",
		SubtotalAmount: decimal.NewFromInt(70),
		FreightAmount:  decimal.NewFromInt(8),
		TotalAmount:    decimal.NewFromInt(78),
		Items: []models.OrderLineItem{
			{ItemID: uuid.New(), Name: "Calabresa", Quantity: 2, SubtotalAmount: decimal.NewFromInt(70)},
		},
	}
}

func checkoutBody() string {
	return `{
		"customer_name": "Ana Souza",
		"customer_phone": "11987654321",
		"payment_method": "pix",
		"address": {
			"street": "Rua das Flores",
			"number": "123",
			"district": "Centro",
			"city": "Sao Paulo"
		}
	}`
}

func TestCheckoutSuccess(t *testing.T) {
	svc := &stubOrderService{order: sampleOrder()}
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", strings.NewReader(checkoutBody()))
	req = req.WithContext(middleware.WithSessionID(req.Context(), "session-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.SessionID != "session-1" {
		t.Fatalf("session id not forwarded: %q", svc.lastInput.SessionID)
	}
	if svc.lastInput.InitialStatus != enums.OrderStatusPending {
		t.Fatalf("expected pending default, got %s", svc.lastInput.InitialStatus)
	}

	var envelope struct {
		Data OrderDetail `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != 42 {
		t.Fatalf("unexpected order number: %d", envelope.Data.OrderNumber)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(envelope.Data.Items))
	}
}

func TestCheckoutRejectsMissingAddressFields(t *testing.T) {
	handler := Checkout(&stubOrderService{order: sampleOrder()}, nil)

	body := `{"customer_name": "Ana", "customer_phone": "11", "payment_method": "pix", "address": {"street": "Rua"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", strings.NewReader(body))
	req = req.WithContext(middleware.WithSessionID(req.Context(), "session-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutRejectsBadInitialStatus(t *testing.T) {
	handler := Checkout(&stubOrderService{order: sampleOrder()}, nil)

	body := strings.Replace(checkoutBody(), `"payment_method": "pix",`, `"payment_method": "pix", "initial_status": "preparing",`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", strings.NewReader(body))
	req = req.WithContext(middleware.WithSessionID(req.Context(), "session-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDetailInvalidID(t *testing.T) {
	handler := Detail(&stubOrderService{}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/orders/nope", nil), "orderId", "nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateStatusConflictSurfaces422(t *testing.T) {
	svcErr := pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move order from pending to completed")
	handler := UpdateStatus(&stubOrderService{err: svcErr}, nil)

	req := withURLParam(
		httptest.NewRequest(http.MethodPost, "/api/v1/orders/x/status", strings.NewReader(`{"status": "completed"}`)),
		"orderId", uuid.NewString(),
	)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListFiltersInvalidStatus(t *testing.T) {
	handler := List(&stubOrderService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=bogus", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListSummarizesOrders(t *testing.T) {
	order := sampleOrder()
	svc := &stubOrderService{list: []models.Order{*order}}
	handler := List(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?customer_phone=11987654321", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if svc.lastFilter.CustomerPhone != "11987654321" {
		t.Fatalf("phone filter not forwarded: %+v", svc.lastFilter)
	}

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []OrderSummary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ItemCount != 2 {
		t.Fatalf("unexpected summary: %+v", envelope.Data)
	}
}
