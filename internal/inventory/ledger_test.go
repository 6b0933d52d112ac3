package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Beef Wings", Category: "Food", Price: 45.50, Quantity: 15},
		{ID: 2, Name: "Chicken Wings", Category: "Food", Price: 39.00, Quantity: 8, LowStockAlert: true},
		{ID: 3, Name: "Cappuccino", Category: "Beverages", Price: 25.00, Quantity: 0, LowStockAlert: true},
	}
}

func TestApplySaleDecrementsStockAndRecordsSale(t *testing.T) {
	catalog := testCatalog()
	now := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	customerID := int64(7)

	req := SaleRequest{
		CustomerID: &customerID,
		Items: []domain.SaleItem{
			{ProductID: 1, Quantity: 5, Price: 45.50},
			{ProductID: 2, Quantity: 2, Price: 39.00},
		},
		TotalAmount:   305.50,
		PaymentMethod: domain.PaymentCard,
	}

	updated, sale, err := ApplySale(catalog, req, 99, now)
	if err != nil {
		t.Fatalf("ApplySale returned error: %v", err)
	}

	if updated[0].Quantity != 10 {
		t.Errorf("product 1 quantity = %d, want 10", updated[0].Quantity)
	}
	if updated[0].LowStockAlert {
		t.Error("product 1 at quantity 10 should not be flagged low")
	}
	if updated[1].Quantity != 6 {
		t.Errorf("product 2 quantity = %d, want 6", updated[1].Quantity)
	}
	if !updated[1].LowStockAlert {
		t.Error("product 2 at quantity 6 should be flagged low")
	}

	if sale.ID != 99 {
		t.Errorf("sale id = %d, want 99", sale.ID)
	}
	if sale.CustomerID == nil || *sale.CustomerID != 7 {
		t.Errorf("sale customer id = %v, want 7", sale.CustomerID)
	}
	if sale.TotalAmount != 305.50 {
		t.Errorf("sale total = %v, want 305.50", sale.TotalAmount)
	}
	if sale.PaymentMethod != domain.PaymentCard {
		t.Errorf("payment method = %q, want %q", sale.PaymentMethod, domain.PaymentCard)
	}
	if !sale.SaleDate.Equal(now) {
		t.Errorf("sale date = %v, want %v", sale.SaleDate, now)
	}
	if sale.Status != domain.SaleStatusCompleted {
		t.Errorf("sale status = %q, want completed", sale.Status)
	}
	if len(sale.Items) != 2 {
		t.Fatalf("sale items = %d, want 2", len(sale.Items))
	}

	// Input catalog must not be touched.
	if catalog[0].Quantity != 15 || catalog[1].Quantity != 8 {
		t.Error("input catalog was mutated")
	}
}

func TestApplySaleQuantityCanReachExactlyZero(t *testing.T) {
	catalog := testCatalog()

	req := SaleRequest{
		Items: []domain.SaleItem{{ProductID: 2, Quantity: 8, Price: 39.00}},
	}

	updated, _, err := ApplySale(catalog, req, 1, time.Now())
	if err != nil {
		t.Fatalf("ApplySale returned error: %v", err)
	}
	if updated[1].Quantity != 0 {
		t.Errorf("quantity = %d, want 0", updated[1].Quantity)
	}
	if !updated[1].LowStockAlert {
		t.Error("empty product should be flagged low")
	}
}

func TestApplySaleInsufficientStockLeavesCatalogUntouched(t *testing.T) {
	catalog := testCatalog()

	// First item would succeed; second exceeds stock. Nothing may change.
	req := SaleRequest{
		Items: []domain.SaleItem{
			{ProductID: 1, Quantity: 5, Price: 45.50},
			{ProductID: 2, Quantity: 9, Price: 39.00},
		},
	}

	updated, _, err := ApplySale(catalog, req, 1, time.Now())
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("error type = %T, want *InsufficientStockError", err)
	}
	if stockErr.ProductID != 2 || stockErr.Available != 8 || stockErr.Requested != 9 {
		t.Errorf("stock error = %+v, want product 2, available 8, requested 9", stockErr)
	}

	for i := range catalog {
		if updated[i].Quantity != catalog[i].Quantity {
			t.Errorf("product %d quantity changed on failed sale", catalog[i].ID)
		}
	}
}

func TestApplySaleUnknownProduct(t *testing.T) {
	catalog := testCatalog()

	req := SaleRequest{
		Items: []domain.SaleItem{{ProductID: 42, Quantity: 1, Price: 10}},
	}

	_, _, err := ApplySale(catalog, req, 1, time.Now())

	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *ProductNotFoundError", err)
	}
	if notFound.ProductID != 42 {
		t.Errorf("missing product id = %d, want 42", notFound.ProductID)
	}
}

func TestApplySaleRejectsEmptyItems(t *testing.T) {
	_, _, err := ApplySale(testCatalog(), SaleRequest{}, 1, time.Now())
	if !errors.Is(err, ErrNoItems) {
		t.Fatalf("error = %v, want ErrNoItems", err)
	}
}

func TestApplySaleDefaultsPaymentMethodToCash(t *testing.T) {
	req := SaleRequest{
		Items: []domain.SaleItem{{ProductID: 1, Quantity: 1, Price: 45.50}},
	}

	_, sale, err := ApplySale(testCatalog(), req, 1, time.Now())
	if err != nil {
		t.Fatalf("ApplySale returned error: %v", err)
	}
	if sale.PaymentMethod != domain.PaymentCash {
		t.Errorf("payment method = %q, want cash", sale.PaymentMethod)
	}
	if sale.CustomerID != nil {
		t.Errorf("customer id = %v, want nil for walk-in sale", sale.CustomerID)
	}
}

func TestApplySaleRepeatedProductLine(t *testing.T) {
	// The same product twice in one sale deducts cumulatively.
	catalog := testCatalog()

	req := SaleRequest{
		Items: []domain.SaleItem{
			{ProductID: 1, Quantity: 4, Price: 45.50},
			{ProductID: 1, Quantity: 6, Price: 45.50},
		},
	}

	updated, _, err := ApplySale(catalog, req, 1, time.Now())
	if err != nil {
		t.Fatalf("ApplySale returned error: %v", err)
	}
	if updated[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5 after cumulative deduction", updated[0].Quantity)
	}
}

func TestAdjustStockAdd(t *testing.T) {
	catalog := testCatalog()

	updated, product, err := AdjustStock(catalog, 2, ActionAdd, 20)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if product.Quantity != 28 {
		t.Errorf("quantity = %d, want 28", product.Quantity)
	}
	if product.LowStockAlert {
		t.Error("restocked product should not be flagged low")
	}
	if updated[1].Quantity != 28 {
		t.Errorf("catalog quantity = %d, want 28", updated[1].Quantity)
	}
	if catalog[1].Quantity != 8 {
		t.Error("input catalog was mutated")
	}
}

func TestAdjustStockDeductClampsAtZero(t *testing.T) {
	updated, product, err := AdjustStock(testCatalog(), 2, ActionDeduct, 100)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if product.Quantity != 0 {
		t.Errorf("quantity = %d, want 0 after clamped deduct", product.Quantity)
	}
	if !product.LowStockAlert {
		t.Error("empty product should be flagged low")
	}
	if updated[1].Quantity != 0 {
		t.Errorf("catalog quantity = %d, want 0", updated[1].Quantity)
	}
}

func TestAdjustStockValidation(t *testing.T) {
	catalog := testCatalog()

	if _, _, err := AdjustStock(catalog, 1, "remove", 5); !errors.Is(err, ErrInvalidAdjustment) {
		t.Errorf("unknown action: error = %v, want ErrInvalidAdjustment", err)
	}
	if _, _, err := AdjustStock(catalog, 1, ActionAdd, -5); !errors.Is(err, ErrInvalidAdjustment) {
		t.Errorf("negative amount: error = %v, want ErrInvalidAdjustment", err)
	}

	_, _, err := AdjustStock(catalog, 42, ActionAdd, 5)
	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("missing product: error type = %T, want *ProductNotFoundError", err)
	}
}
