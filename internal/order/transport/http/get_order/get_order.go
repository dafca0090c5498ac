package getorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/productorderingapp/ordering/internal/order/service/models/order"
	"github.com/productorderingapp/ordering/internal/order/service/models/placement"
	"github.com/productorderingapp/ordering/internal/order/transport/http/response"
)

// service is an interface for the service layer.
type service interface {
	GetOrderByID(ctx context.Context, id int64) (*order.Order, error)
}

// GetOrder handles the get order by id request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.WriteError(w, placement.ErrInvalidRequest)

		return
	}

	found, err := service.GetOrderByID(r.Context(), id)
	if err != nil {
		slog.Error("Error getting order", "id", id, "error", err)
		response.WriteError(w, err)

		return
	}

	response.WriteJSON(w, http.StatusOK, found)
}
