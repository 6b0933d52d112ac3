package domain

import "time"

// Payment methods accepted at the register.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentMobile = "mobile"
)

// SaleStatusCompleted is the only sale status; sales have no lifecycle
// beyond creation.
const SaleStatusCompleted = "completed"

// SaleItem is one line of a sale. ProductID is a weak reference: deleting
// the product later does not touch recorded sales. Price is the unit price
// echoed from the request.
type SaleItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Sale is an append-only record of a completed transaction. CustomerID is
// nullable and unvalidated, matching the original wire contract.
type Sale struct {
	ID            int64      `json:"id"`
	CustomerID    *int64     `json:"customerId"`
	Items         []SaleItem `json:"items"`
	TotalAmount   float64    `json:"totalAmount"`
	PaymentMethod string     `json:"paymentMethod"`
	SaleDate      time.Time  `json:"saleDate"`
	Status        string     `json:"status"`
}
