package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
)

// Order is the order aggregate. ID is the storage identity; OrderNumber is
// the human-shareable identifier, assigned once at creation and never
// changed afterwards. Line items are owned by the order.
type Order struct {
	ID          int64               `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Items       []lineitem.LineItem `json:"orderLineItems"`
}

// New builds an in-memory draft order with a fresh order number. The draft
// becomes durable only when the placement succeeds.
func New(items []lineitem.LineItem) Order {
	return Order{
		OrderNumber: uuid.NewString(),
		Items:       items,
	}
}
