package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/productorderingapp/ordering/internal/order/service/models/placement"
)

const (
	CodeInvalidRequest        = "invalid_request"
	CodeInsufficientStock     = "insufficient_stock"
	CodeDependencyUnavailable = "inventory_unavailable"
	CodeOrderNotFound         = "order_not_found"
	CodeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
	}
}

// WriteError maps a placement error to its HTTP status and error code.
func WriteError(w http.ResponseWriter, err error) {
	status, code := statusFromError(err)

	WriteJSON(w, status, errorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, placement.ErrInvalidRequest):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, placement.ErrInsufficientStock):
		return http.StatusConflict, CodeInsufficientStock
	case errors.Is(err, placement.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, CodeDependencyUnavailable
	case errors.Is(err, placement.ErrOrderNotFound):
		return http.StatusNotFound, CodeOrderNotFound
	default:
		// ErrStorageFailure and anything unexpected.
		return http.StatusInternalServerError, CodeInternalError
	}
}
