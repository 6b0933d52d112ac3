package domain

// LowStockThreshold is the quantity below which a product is flagged
// as running low.
const LowStockThreshold = 10

// DefaultCategory is assigned to products created without a category.
const DefaultCategory = "Uncategorized"

// Product represents an item in the cafe catalog. JSON field names match
// the wire format consumed by the existing frontend.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	LowStockAlert bool    `json:"lowStockAlert"`
}

// RefreshLowStockAlert recomputes the derived low-stock flag. It must be
// called after every change to Quantity; the flag is never set directly.
func (p *Product) RefreshLowStockAlert() {
	p.LowStockAlert = p.Quantity < LowStockThreshold
}
