package placeorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/productorderingapp/ordering/internal/order/service/models/currency"
	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
	"github.com/productorderingapp/ordering/internal/order/service/models/order"
	"github.com/productorderingapp/ordering/internal/order/service/models/placement"
	"github.com/productorderingapp/ordering/internal/order/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, items []lineitem.LineItem) (*order.Order, error)
}

type lineItemRequest struct {
	SkuCode       string `json:"skuCode"`
	Quantity      int    `json:"quantity"`
	PriceCents    int64  `json:"priceCents"`
	PriceCurrency string `json:"priceCurrency"`
}

type placeOrderRequest struct {
	OrderLineItems []lineItemRequest `json:"orderLineItems"`
}

type placeOrderResponse struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message"`
}

// PlaceOrder handles the order placement request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding place order request body", "error", err)
		response.WriteError(w, placement.ErrInvalidRequest)

		return
	}

	items := make([]lineitem.LineItem, 0, len(req.OrderLineItems))
	for _, item := range req.OrderLineItems {
		cur := currency.CurrencyUSD
		if item.PriceCurrency != "" {
			parsed, err := currency.ParseCurrency(item.PriceCurrency)
			if err != nil {
				response.WriteError(w, placement.ErrInvalidRequest)

				return
			}
			cur = parsed
		}

		items = append(items, lineitem.LineItem{
			SkuCode:       item.SkuCode,
			Quantity:      item.Quantity,
			PriceCents:    item.PriceCents,
			PriceCurrency: cur,
		})
	}

	placed, err := service.PlaceOrder(r.Context(), items)
	if err != nil {
		slog.Error("Error placing order", "error", err)
		response.WriteError(w, err)

		return
	}

	response.WriteJSON(w, http.StatusCreated, placeOrderResponse{
		ID:          placed.ID,
		OrderNumber: placed.OrderNumber,
		Message:     "Order placed successfully",
	})
}
