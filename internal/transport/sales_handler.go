package transport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/domain"
	"github.com/Paballo854/wings-cafe/internal/inventory"
	"github.com/Paballo854/wings-cafe/internal/middleware"
	"github.com/Paballo854/wings-cafe/internal/service"
)

const reportDateLayout = "2006-01-02"

// SaleItemRequest is one line item of a sale request. Price is the unit
// price echoed by the client.
type SaleItemRequest struct {
	ProductID int64   `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CreateSaleRequest represents the sale creation payload. TotalAmount is a
// pointer so the "required" check distinguishes absent from zero.
type CreateSaleRequest struct {
	CustomerID    *int64            `json:"customerId"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount   *float64          `json:"totalAmount" validate:"required,gte=0"`
	PaymentMethod string            `json:"paymentMethod" validate:"omitempty,oneof=cash card mobile"`
}

// SalesHandler handles HTTP requests for sale transactions and reporting
type SalesHandler struct {
	salesService service.SalesService
	logger       *zap.Logger
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService service.SalesService, logger *zap.Logger) *SalesHandler {
	return &SalesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// RegisterRoutes registers all sales and reporting routes
func (h *SalesHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/sales", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/report", h.Report)
	})

	r.With(authMiddleware).Get("/api/reports/summary", h.Summary)
}

// List handles fetching all sales
func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.salesService.ListSales(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sales", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read sales")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, sales)
}

// Create handles recording a sale through the inventory ledger
func (h *SalesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Sale creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "items and total amount are required")
		return
	}

	items := make([]domain.SaleItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	sale, err := h.salesService.CreateSale(r.Context(), inventory.SaleRequest{
		CustomerID:    req.CustomerID,
		Items:         items,
		TotalAmount:   *req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		var (
			notFound     *inventory.ProductNotFoundError
			insufficient *inventory.InsufficientStockError
		)
		switch {
		case errors.As(err, &notFound):
			middleware.RespondWithError(w, http.StatusNotFound,
				fmt.Sprintf("Product %d not found", notFound.ProductID))
		case errors.As(err, &insufficient):
			middleware.RespondWithError(w, http.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for %s", insufficient.Name))
		case errors.Is(err, inventory.ErrNoItems):
			middleware.RespondWithError(w, http.StatusBadRequest, "items and total amount are required")
		default:
			h.logger.Error("Sale creation failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create sale")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, sale)
}

// Report handles the date-ranged sales report
func (h *SalesHandler) Report(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, err := time.Parse(reportDateLayout, startStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "startDate must be formatted YYYY-MM-DD")
		return
	}
	end, err := time.Parse(reportDateLayout, endStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "endDate must be formatted YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		middleware.RespondWithError(w, http.StatusBadRequest, "endDate must not be before startDate")
		return
	}

	// The range is inclusive of the whole end day.
	endOfDay := end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	report, err := h.salesService.Report(r.Context(), start, endOfDay)
	if err != nil {
		h.logger.Error("Sales report failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build sales report")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, report)
}

// Summary handles the dashboard summary
func (h *SalesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.salesService.Summary(r.Context())
	if err != nil {
		h.logger.Error("Dashboard summary failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, summary)
}
