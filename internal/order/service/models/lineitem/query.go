package lineitem

// QueryLineItemsModel is a filter for querying line items.
type QueryLineItemsModel struct {
	Ids      []int64
	OrderIds []int64
	Limit    int
	Offset   int
}
