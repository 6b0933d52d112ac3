package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/domain"
	"github.com/Paballo854/wings-cafe/internal/inventory"
	"github.com/Paballo854/wings-cafe/internal/store"
)

// ProductCreate carries the fields accepted when creating a product.
type ProductCreate struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Quantity    int
}

// ProductUpdate carries a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Quantity    *int
}

// InventoryService defines the interface for product catalog and stock
// business logic.
type InventoryService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, input ProductCreate) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, action string, amount int) (*domain.Product, error)
}

type inventoryService struct {
	guard  *store.Guard
	logger *zap.Logger
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(guard *store.Guard, logger *zap.Logger) InventoryService {
	return &inventoryService{guard: guard, logger: logger}
}

// ListProducts returns the full catalog.
func (s *inventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.guard.View(ctx, func(snap *domain.Snapshot) error {
		products = append([]domain.Product{}, snap.Products...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a product with defaults applied and the low-stock
// flag derived from the initial quantity.
func (s *inventoryService) CreateProduct(ctx context.Context, input ProductCreate) (*domain.Product, error) {
	var created domain.Product
	err := s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		category := input.Category
		if category == "" {
			category = domain.DefaultCategory
		}

		product := domain.Product{
			ID:          domain.NextID(time.Now(), productIDs(snap.Products)...),
			Name:        input.Name,
			Description: input.Description,
			Category:    category,
			Price:       input.Price,
			Quantity:    input.Quantity,
		}
		product.RefreshLowStockAlert()

		snap.Products = append(snap.Products, product)
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", created.ID),
		zap.String("name", created.Name),
	)
	return &created, nil
}

// UpdateProduct merges the supplied fields into an existing product. The
// id is immutable, and the low-stock flag is re-derived whenever the
// quantity changes.
func (s *inventoryService) UpdateProduct(ctx context.Context, id int64, input ProductUpdate) (*domain.Product, error) {
	var updated domain.Product
	err := s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		idx := -1
		for i := range snap.Products {
			if snap.Products[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return &inventory.ProductNotFoundError{ProductID: id}
		}

		p := &snap.Products[idx]
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.Category != nil {
			p.Category = *input.Category
		}
		if input.Price != nil {
			p.Price = *input.Price
		}
		if input.Quantity != nil {
			p.Quantity = *input.Quantity
			p.RefreshLowStockAlert()
		}

		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product. Recorded sales keep their line items;
// the reference is weak.
func (s *inventoryService) DeleteProduct(ctx context.Context, id int64) error {
	return s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		filtered := snap.Products[:0:0]
		for _, p := range snap.Products {
			if p.ID != id {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == len(snap.Products) {
			return &inventory.ProductNotFoundError{ProductID: id}
		}
		snap.Products = filtered
		return nil
	})
}

// AdjustStock applies a manual stock correction through the ledger.
func (s *inventoryService) AdjustStock(ctx context.Context, id int64, action string, amount int) (*domain.Product, error) {
	var adjusted domain.Product
	err := s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		updated, product, err := inventory.AdjustStock(snap.Products, id, action, amount)
		if err != nil {
			return err
		}
		snap.Products = updated
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.Int64("product_id", adjusted.ID),
		zap.String("action", action),
		zap.Int("amount", amount),
		zap.Int("quantity", adjusted.Quantity),
	)
	return &adjusted, nil
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
