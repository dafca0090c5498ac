package event

// OrderPlaced is the notification emitted after an order is committed.
// It is constructed fresh per successful placement and never persisted.
type OrderPlaced struct {
	OrderNumber string `json:"orderNumber"`
}
