package errors

import (
	"fmt"
)

// InsufficientStockError is the cause attached to stock rejections.
// Available is the stock level read when the item was requested.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// NewInsufficientStockError builds a marked stock error for the given product.
func NewInsufficientStockError(productID string, requested, available int) error {
	return WithError(&InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}).
		WithHintf("Insufficient stock! Available: %d", available).
		WithReportableDetails(map[string]any{
			"product_id": productID,
			"requested":  requested,
			"available":  available,
		}).
		Mark(ErrInsufficientStock)
}

// AvailableStock returns the available quantity carried by a stock error.
func AvailableStock(err error) (int, bool) {
	var stockErr *InsufficientStockError
	if As(err, &stockErr) {
		return stockErr.Available, true
	}
	return 0, false
}
