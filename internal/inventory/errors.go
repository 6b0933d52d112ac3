package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrNoItems is returned when a sale request carries no line items.
	ErrNoItems = errors.New("sale must contain at least one item")

	// ErrInvalidAdjustment is returned for an unknown stock action or a
	// negative amount.
	ErrInvalidAdjustment = errors.New(`action must be "add" or "deduct" and amount must not be negative`)
)

// ProductNotFoundError reports a line item or adjustment referencing a
// product id absent from the catalog.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError reports a sale line item requesting more units
// than the product has on hand.
type InsufficientStockError struct {
	ProductID int64
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}
