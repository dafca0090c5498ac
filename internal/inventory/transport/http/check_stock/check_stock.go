package checkstock

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/productorderingapp/ordering/internal/inventory/service/models/stock"
)

// service is an interface for the service layer.
type service interface {
	IsInStock(ctx context.Context, skuCodes []string) ([]stock.Status, error)
}

// CheckStock handles the batched in-stock query.
func CheckStock(w http.ResponseWriter, r *http.Request, service service) {
	skuCodes := r.URL.Query()["skuCode"]
	if len(skuCodes) == 0 {
		http.Error(w, "at least one skuCode is required", http.StatusBadRequest)

		return
	}

	statuses, err := service.IsInStock(r.Context(), skuCodes)
	if err != nil {
		http.Error(w, "failed to query stock", http.StatusInternalServerError)
		slog.Error("Error querying stock", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(statuses); err != nil {
		slog.Error("Error writing stock response", "error", err)
	}
}
