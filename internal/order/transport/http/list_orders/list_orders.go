package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/productorderingapp/ordering/internal/order/service/models/order"
	"github.com/productorderingapp/ordering/internal/order/service/models/placement"
	"github.com/productorderingapp/ordering/internal/order/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.WriteError(w, placement.ErrInvalidRequest)

		return
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		slog.Error("Error listing orders", "error", err)
		response.WriteError(w, err)

		return
	}

	response.WriteJSON(w, http.StatusOK, orders)
}

func filterFromQuery(r *http.Request) (order.QueryOrdersModel, error) {
	filter := order.QueryOrdersModel{}
	query := r.URL.Query()

	for _, raw := range query["ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		filter.Ids = append(filter.Ids, id)
	}

	filter.OrderNumbers = query["orderNumbers"]

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		filter.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		filter.Offset = offset
	}

	return filter, nil
}
