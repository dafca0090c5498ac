package stock

import "time"

// Stock is a single ledger entry: the available quantity for one SKU.
type Stock struct {
	ID        int64     `json:"id"`
	SkuCode   string    `json:"skuCode"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Status is the query-time view handed to callers: whether a SKU is in
// stock right now. Derived from the quantity, never stored.
type Status struct {
	SkuCode string `json:"skuCode"`
	InStock bool   `json:"isInStock"`
}
