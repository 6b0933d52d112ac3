package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/domain"
	"github.com/Paballo854/wings-cafe/internal/inventory"
	"github.com/Paballo854/wings-cafe/internal/store"
)

// totalMismatchTolerance absorbs float rounding when cross-checking the
// client-supplied total against items x unit price.
const totalMismatchTolerance = 0.01

// ProductSales aggregates one product's performance inside a report.
type ProductSales struct {
	ProductID    int64   `json:"productId"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantitySold"`
	Revenue      float64 `json:"revenue"`
}

// SalesReport summarizes sales inside a date range.
type SalesReport struct {
	StartDate         string         `json:"startDate"`
	EndDate           string         `json:"endDate"`
	TotalRevenue      float64        `json:"totalRevenue"`
	TotalTransactions int            `json:"totalTransactions"`
	AverageSale       float64        `json:"averageSale"`
	TopProducts       []ProductSales `json:"topProducts"`
	Sales             []domain.Sale  `json:"sales"`
}

// DashboardSummary carries the headline numbers the dashboard shows.
type DashboardSummary struct {
	TotalProducts  int     `json:"totalProducts"`
	LowStockItems  int     `json:"lowStockItems"`
	TotalSales     int     `json:"totalSales"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalCustomers int     `json:"totalCustomers"`
}

// SalesService defines the interface for sale transactions and reporting.
type SalesService interface {
	ListSales(ctx context.Context) ([]domain.Sale, error)
	CreateSale(ctx context.Context, req inventory.SaleRequest) (*domain.Sale, error)
	Report(ctx context.Context, start, end time.Time) (*SalesReport, error)
	Summary(ctx context.Context) (*DashboardSummary, error)
}

type salesService struct {
	guard  *store.Guard
	logger *zap.Logger
}

// NewSalesService creates a new instance of SalesService.
func NewSalesService(guard *store.Guard, logger *zap.Logger) SalesService {
	return &salesService{guard: guard, logger: logger}
}

func (s *salesService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := s.guard.View(ctx, func(snap *domain.Snapshot) error {
		sales = append([]domain.Sale{}, snap.Sales...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// CreateSale runs the sale through the ledger and persists the decremented
// catalog and the new sale record in the same write. A ledger rejection
// leaves the snapshot untouched.
func (s *salesService) CreateSale(ctx context.Context, req inventory.SaleRequest) (*domain.Sale, error) {
	var sale domain.Sale
	err := s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		now := time.Now()
		saleID := domain.NextID(now, saleIDs(snap.Sales)...)

		updated, newSale, err := inventory.ApplySale(snap.Products, req, saleID, now)
		if err != nil {
			return err
		}

		snap.Products = updated
		snap.Sales = append(snap.Sales, newSale)
		sale = newSale
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The total is taken from the client, not recomputed — a known trust
	// gap in the wire contract. Surface disagreements instead of hiding
	// them.
	if computed := itemsTotal(sale.Items); math.Abs(computed-sale.TotalAmount) > totalMismatchTolerance {
		s.logger.Warn("Sale total disagrees with line items",
			zap.Int64("sale_id", sale.ID),
			zap.Float64("supplied_total", sale.TotalAmount),
			zap.Float64("computed_total", computed),
		)
	}

	s.logger.Info("Sale recorded",
		zap.Int64("sale_id", sale.ID),
		zap.Int("items", len(sale.Items)),
		zap.Float64("total", sale.TotalAmount),
	)
	return &sale, nil
}

// Report aggregates sales whose date falls inside [start, end], matching
// the numbers the reporting view previously computed in the browser.
func (s *salesService) Report(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	report := &SalesReport{
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		TopProducts: []ProductSales{},
		Sales:       []domain.Sale{},
	}

	err := s.guard.View(ctx, func(snap *domain.Snapshot) error {
		sold := map[int64]*ProductSales{}

		for _, sale := range snap.Sales {
			if sale.SaleDate.Before(start) || sale.SaleDate.After(end) {
				continue
			}

			report.Sales = append(report.Sales, sale)
			report.TotalRevenue += sale.TotalAmount
			report.TotalTransactions++

			for _, item := range sale.Items {
				entry, ok := sold[item.ProductID]
				if !ok {
					entry = &ProductSales{ProductID: item.ProductID, Name: "Unknown"}
					if p := findByID(snap.Products, item.ProductID); p != nil {
						entry.Name = p.Name
					}
					sold[item.ProductID] = entry
				}
				entry.QuantitySold += item.Quantity
				if p := findByID(snap.Products, item.ProductID); p != nil {
					entry.Revenue += float64(item.Quantity) * p.Price
				}
			}
		}

		for _, entry := range sold {
			report.TopProducts = append(report.TopProducts, *entry)
		}
		sort.Slice(report.TopProducts, func(i, j int) bool {
			return report.TopProducts[i].QuantitySold > report.TopProducts[j].QuantitySold
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.TotalTransactions > 0 {
		report.AverageSale = report.TotalRevenue / float64(report.TotalTransactions)
	}
	return report, nil
}

// Summary returns the dashboard headline numbers.
func (s *salesService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	err := s.guard.View(ctx, func(snap *domain.Snapshot) error {
		summary.TotalProducts = len(snap.Products)
		summary.TotalCustomers = len(snap.Customers)
		summary.TotalSales = len(snap.Sales)
		for _, p := range snap.Products {
			if p.LowStockAlert {
				summary.LowStockItems++
			}
		}
		for _, sale := range snap.Sales {
			summary.TotalRevenue += sale.TotalAmount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func itemsTotal(items []domain.SaleItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

func findByID(products []domain.Product, id int64) *domain.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}

func saleIDs(sales []domain.Sale) []int64 {
	ids := make([]int64, len(sales))
	for i, sale := range sales {
		ids[i] = sale.ID
	}
	return ids
}
