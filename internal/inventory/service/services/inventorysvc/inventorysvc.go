package inventorysvc

import (
	"context"

	"github.com/productorderingapp/ordering/internal/inventory/dal/interfaces/istockrepo"
	"github.com/productorderingapp/ordering/internal/inventory/service/models/stock"
)

// InventoryService answers in-stock queries against the stock ledger.
type InventoryService struct {
	stockRepo istockrepo.IStockRepository
}

// option is a function that configures the InventoryService.
type option func(*InventoryService)

// MustNewInventoryService creates a new InventoryService.
func MustNewInventoryService(opts ...option) *InventoryService {
	s := &InventoryService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.stockRepo == nil {
		panic("inventorysvc: stock repository is required")
	}

	return s
}

// WithStockRepository sets the stock repository for the InventoryService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStockRepository(repo istockrepo.IStockRepository) option {
	return func(s *InventoryService) {
		s.stockRepo = repo
	}
}

// IsInStock reports, for every requested SKU code, whether it is currently
// in stock. The result always contains exactly one entry per requested SKU;
// unknown SKUs report out of stock.
func (s *InventoryService) IsInStock(
	ctx context.Context,
	skuCodes []string,
) ([]stock.Status, error) {
	records, err := s.stockRepo.FindBySkuCodes(ctx, skuCodes)
	if err != nil {
		return nil, err
	}

	quantities := make(map[string]int, len(records))
	for _, record := range records {
		quantities[record.SkuCode] = record.Quantity
	}

	statuses := make([]stock.Status, 0, len(skuCodes))
	for _, skuCode := range skuCodes {
		statuses = append(statuses, stock.Status{
			SkuCode: skuCode,
			InStock: quantities[skuCode] > 0,
		})
	}

	return statuses, nil
}
