package order

// QueryOrdersModel is a filter for querying orders.
type QueryOrdersModel struct {
	Ids          []int64
	OrderNumbers []string
	Limit        int
	Offset       int
}
