package istockrepo

import (
	"context"

	"github.com/productorderingapp/ordering/internal/inventory/service/models/stock"
)

// IStockRepository is an interface for the stock postgres repository.
type IStockRepository interface {
	FindBySkuCodes(ctx context.Context, skuCodes []string) ([]stock.Stock, error)
}
