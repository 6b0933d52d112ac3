// Package inventory implements the stock ledger: all-or-nothing sale
// application against the product catalog and manual stock adjustments.
// Every function is pure — it never mutates the catalog it is given, and
// all state lives in the snapshot passed in and returned. Callers are
// responsible for serializing access to that snapshot and for persisting
// the returned catalog and sale in the same logical write.
package inventory

import (
	"time"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

// Stock adjustment actions.
const (
	ActionAdd    = "add"
	ActionDeduct = "deduct"
)

// SaleRequest is a proposed sale to apply against the catalog. TotalAmount
// is taken as supplied by the caller and is not recomputed from the items.
type SaleRequest struct {
	CustomerID    *int64
	Items         []domain.SaleItem
	TotalAmount   float64
	PaymentMethod string
}

// ApplySale applies a sale request to the catalog as a single unit.
//
// Line items are checked and applied, in order, against a working copy of
// the catalog, so a product repeated across items is validated against the
// stock remaining after earlier lines. On any error (unknown product,
// insufficient stock) the input catalog is returned untouched — no partial
// decrement is ever visible.
//
// The finalized sale record carries the supplied id, the items echoed
// verbatim, the caller's total, the payment method defaulted to cash, and
// saleDate set to now.
func ApplySale(catalog []domain.Product, req SaleRequest, saleID int64, now time.Time) ([]domain.Product, domain.Sale, error) {
	if len(req.Items) == 0 {
		return catalog, domain.Sale{}, ErrNoItems
	}

	updated := make([]domain.Product, len(catalog))
	copy(updated, catalog)

	for _, item := range req.Items {
		idx := findProduct(updated, item.ProductID)
		if idx < 0 {
			return catalog, domain.Sale{}, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if updated[idx].Quantity < item.Quantity {
			return catalog, domain.Sale{}, &InsufficientStockError{
				ProductID: item.ProductID,
				Name:      updated[idx].Name,
				Available: updated[idx].Quantity,
				Requested: item.Quantity,
			}
		}
		updated[idx].Quantity -= item.Quantity
		updated[idx].RefreshLowStockAlert()
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCash
	}

	items := make([]domain.SaleItem, len(req.Items))
	copy(items, req.Items)

	sale := domain.Sale{
		ID:            saleID,
		CustomerID:    req.CustomerID,
		Items:         items,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: paymentMethod,
		SaleDate:      now,
		Status:        domain.SaleStatusCompleted,
	}

	return updated, sale, nil
}

// AdjustStock applies a manual stock correction to one product and returns
// the updated catalog together with the updated product.
//
// Adding has no upper bound. Deducting clamps at zero rather than failing:
// manual corrections are forgiving where sales are strict. The low-stock
// flag is recomputed either way.
func AdjustStock(catalog []domain.Product, productID int64, action string, amount int) ([]domain.Product, domain.Product, error) {
	if (action != ActionAdd && action != ActionDeduct) || amount < 0 {
		return catalog, domain.Product{}, ErrInvalidAdjustment
	}

	idx := findProduct(catalog, productID)
	if idx < 0 {
		return catalog, domain.Product{}, &ProductNotFoundError{ProductID: productID}
	}

	updated := make([]domain.Product, len(catalog))
	copy(updated, catalog)

	switch action {
	case ActionAdd:
		updated[idx].Quantity += amount
	case ActionDeduct:
		updated[idx].Quantity -= amount
		if updated[idx].Quantity < 0 {
			updated[idx].Quantity = 0
		}
	}
	updated[idx].RefreshLowStockAlert()

	return updated, updated[idx], nil
}

func findProduct(catalog []domain.Product, id int64) int {
	for i := range catalog {
		if catalog[i].ID == id {
			return i
		}
	}
	return -1
}
