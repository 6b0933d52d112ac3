// Package postgres implements the snapshot store over PostgreSQL, for
// deployments that have outgrown the flat file. The port contract is the
// same: the snapshot is loaded and saved whole, with Save replacing all
// rows in one transaction.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

// Store persists the snapshot across the products, customers, sales, and
// sale_items tables.
type Store struct {
	db *sql.DB
}

// NewStore creates a Postgres-backed snapshot store over an open handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the full snapshot.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()

	if err := s.loadProducts(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadCustomers(ctx, snap); err != nil {
		return nil, err
	}
	if err := s.loadSales(ctx, snap); err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *Store) loadProducts(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, category, price, quantity, low_stock_alert
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Quantity, &p.LowStockAlert); err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}
		snap.Products = append(snap.Products, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating products: %w", err)
	}
	return nil
}

func (s *Store) loadCustomers(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, phone, address, created_at
		FROM customers
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan customer: %w", err)
		}
		snap.Customers = append(snap.Customers, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating customers: %w", err)
	}
	return nil
}

func (s *Store) loadSales(ctx context.Context, snap *domain.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, total_amount, payment_method, sale_date, status
		FROM sales
		ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}
	defer rows.Close()

	byID := map[int64]int{}
	for rows.Next() {
		var (
			sale       domain.Sale
			customerID sql.NullInt64
		)
		if err := rows.Scan(&sale.ID, &customerID, &sale.TotalAmount, &sale.PaymentMethod, &sale.SaleDate, &sale.Status); err != nil {
			return fmt.Errorf("failed to scan sale: %w", err)
		}
		if customerID.Valid {
			id := customerID.Int64
			sale.CustomerID = &id
		}
		sale.Items = []domain.SaleItem{}
		byID[sale.ID] = len(snap.Sales)
		snap.Sales = append(snap.Sales, sale)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating sales: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT sale_id, product_id, quantity, price
		FROM sale_items
		ORDER BY sale_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to load sale items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			saleID int64
			item   domain.SaleItem
		)
		if err := itemRows.Scan(&saleID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("failed to scan sale item: %w", err)
		}
		if idx, ok := byID[saleID]; ok {
			snap.Sales[idx].Items = append(snap.Sales[idx].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("error iterating sale items: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot with snap in a single transaction.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot write: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"sale_items", "sales", "customers", "products"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, p := range snap.Products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, name, description, category, price, quantity, low_stock_alert)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, p.Name, p.Description, p.Category, p.Price, p.Quantity, p.LowStockAlert)
		if err != nil {
			return fmt.Errorf("failed to write product %d: %w", p.ID, err)
		}
	}

	for _, c := range snap.Customers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, phone, address, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.ID, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to write customer %d: %w", c.ID, err)
		}
	}

	for _, sale := range snap.Sales {
		var customerID sql.NullInt64
		if sale.CustomerID != nil {
			customerID = sql.NullInt64{Int64: *sale.CustomerID, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales (id, customer_id, total_amount, payment_method, sale_date, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, sale.ID, customerID, sale.TotalAmount, sale.PaymentMethod, sale.SaleDate, sale.Status)
		if err != nil {
			return fmt.Errorf("failed to write sale %d: %w", sale.ID, err)
		}

		for pos, item := range sale.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO sale_items (sale_id, position, product_id, quantity, price)
				VALUES ($1, $2, $3, $4, $5)
			`, sale.ID, pos, item.ProductID, item.Quantity, item.Price)
			if err != nil {
				return fmt.Errorf("failed to write sale item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot write: %w", err)
	}
	return nil
}
