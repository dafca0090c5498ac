package stock

import "github.com/productorderingapp/ordering/internal/order/service/models/lineitem"

// Record is the queried (not owned) stock view of a single SKU.
type Record struct {
	SkuCode string `json:"skuCode"`
	InStock bool   `json:"isInStock"`
}

// DistinctSkuCodes collects the de-duplicated SKU set of the given items,
// preserving first-seen order.
func DistinctSkuCodes(items []lineitem.LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	skuCodes := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.SkuCode]; ok {
			continue
		}
		seen[item.SkuCode] = struct{}{}
		skuCodes = append(skuCodes, item.SkuCode)
	}

	return skuCodes
}

// AllInStock reduces per-SKU query results into a single all-or-nothing
// decision: every requested SKU must individually report in stock. A SKU
// missing from the results counts as out of stock (fail-closed). A SKU
// referenced by several line items needs to be satisfied once.
//
// Only the boolean in-stock flag is checked; available quantity is not
// compared against requested quantity.
func AllInStock(skuCodes []string, results map[string]bool) bool {
	for _, skuCode := range skuCodes {
		if !results[skuCode] {
			return false
		}
	}

	return true
}
