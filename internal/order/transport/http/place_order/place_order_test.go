package placeorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
	"github.com/productorderingapp/ordering/internal/order/service/models/order"
	"github.com/productorderingapp/ordering/internal/order/service/models/placement"
)

type fakeService struct {
	placed *order.Order
	err    error
	items  []lineitem.LineItem
}

func (s *fakeService) PlaceOrder(_ context.Context, items []lineitem.LineItem) (*order.Order, error) {
	s.items = items
	if s.err != nil {
		return nil, s.err
	}

	return s.placed, nil
}

func doRequest(t *testing.T, svc *fakeService, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	PlaceOrder(rec, req, svc)

	return rec
}

func TestPlaceOrder(t *testing.T) {
	t.Parallel()

	validBody := `{"orderLineItems":[{"skuCode":"iphone_15","quantity":2,"priceCents":1000,"priceCurrency":"USD"}]}`

	t.Run("success returns 201 with order identification", func(t *testing.T) {
		svc := &fakeService{placed: &order.Order{ID: 7, OrderNumber: "n-7"}}

		rec := doRequest(t, svc, validBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		var resp struct {
			ID          int64  `json:"id"`
			OrderNumber string `json:"orderNumber"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.ID != 7 || resp.OrderNumber != "n-7" {
			t.Fatalf("unexpected response: %+v", resp)
		}

		if len(svc.items) != 1 || svc.items[0].SkuCode != "iphone_15" || svc.items[0].Quantity != 2 {
			t.Fatalf("items not passed through: %+v", svc.items)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		rec := doRequest(t, &fakeService{}, `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown currency returns 400", func(t *testing.T) {
		rec := doRequest(t, &fakeService{}, `{"orderLineItems":[{"skuCode":"a","quantity":1,"priceCents":1,"priceCurrency":"XXX"}]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("status mapping", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
			code string
		}{
			{"invalid request", placement.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
			{"insufficient stock", placement.ErrInsufficientStock, http.StatusConflict, "insufficient_stock"},
			{"dependency unavailable", placement.ErrDependencyUnavailable, http.StatusServiceUnavailable, "inventory_unavailable"},
			{"storage failure", placement.ErrStorageFailure, http.StatusInternalServerError, "internal_error"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := doRequest(t, &fakeService{err: tt.err}, validBody)
				if rec.Code != tt.want {
					t.Fatalf("expected %d, got %d", tt.want, rec.Code)
				}

				var resp struct {
					Code string `json:"code"`
				}
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if resp.Code != tt.code {
					t.Fatalf("expected code %q, got %q", tt.code, resp.Code)
				}
			})
		}
	})
}
