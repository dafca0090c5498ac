package lineitem

import (
	"time"

	"github.com/productorderingapp/ordering/internal/order/service/models/currency"
)

// LineItem represents a single position within an order. It has no
// lifecycle of its own: it is created with its parent order and deleted
// with it. Quantity and price are fixed at order-creation time.
type LineItem struct {
	ID            int64             `json:"id"`
	OrderID       int64             `json:"orderId"`
	SkuCode       string            `json:"skuCode"`
	Quantity      int               `json:"quantity"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
