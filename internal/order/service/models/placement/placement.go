package placement

import "errors"

// Placement outcome taxonomy. All of these abort the placement at the step
// they occur with no side effects; a notification publish failure is not in
// the taxonomy because it does not change the placement outcome.
var (
	// ErrInvalidRequest means the caller submitted no line items or an item
	// with a non-positive quantity or negative price.
	ErrInvalidRequest = errors.New("invalid placement request")

	// ErrInsufficientStock means at least one distinct SKU was reported out
	// of stock or was missing from the inventory response.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDependencyUnavailable means the inventory query failed or timed
	// out; the true stock state is unknown.
	ErrDependencyUnavailable = errors.New("inventory service unavailable")

	// ErrStorageFailure means the commit was attempted but is not durable;
	// the order does not exist.
	ErrStorageFailure = errors.New("order storage failure")

	// ErrOrderNotFound is returned by the read side for an unknown order id.
	ErrOrderNotFound = errors.New("order not found")
)
