package ilineitemrepo

import (
	"context"

	"github.com/productorderingapp/ordering/internal/order/service/models/lineitem"
)

// ILineItemRepository is an interface for the line item postgres repository.
type ILineItemRepository interface {
	BulkInsert(ctx context.Context, items []lineitem.LineItem) ([]lineitem.LineItem, error)
	Query(ctx context.Context, filter *lineitem.QueryLineItemsModel) ([]lineitem.LineItem, error)
}
