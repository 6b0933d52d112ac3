package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/inventory"
	"github.com/Paballo854/wings-cafe/internal/middleware"
	"github.com/Paballo854/wings-cafe/internal/service"
)

// CreateProductRequest represents the product creation payload. Price and
// quantity are pointers so an explicit zero passes "required".
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
}

// UpdateProductRequest represents a partial product update; absent fields
// are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// AdjustStockRequest represents a manual stock correction.
type AdjustStockRequest struct {
	Action string `json:"action" validate:"required,oneof=add deduct"`
	Amount *int   `json:"amount" validate:"required,gte=0"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	inventoryService service.InventoryService
	logger           *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(inventoryService service.InventoryService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Patch("/stock/{id}", h.AdjustStock)
	})
}

// List handles fetching the full catalog
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.inventoryService.CreateProduct(r.Context(), service.ProductCreate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
	})
	if err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles partial product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.inventoryService.UpdateProduct(r.Context(), id, service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		var notFound *inventory.ProductNotFoundError
		if errors.As(err, &notFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Product update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.inventoryService.DeleteProduct(r.Context(), id); err != nil {
		var notFound *inventory.ProductNotFoundError
		if errors.As(err, &notFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Product deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// AdjustStock handles manual stock corrections
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req AdjustStockRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Stock adjustment validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "valid action and amount are required")
		return
	}

	product, err := h.inventoryService.AdjustStock(r.Context(), id, req.Action, *req.Amount)
	if err != nil {
		var notFound *inventory.ProductNotFoundError
		switch {
		case errors.As(err, &notFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, inventory.ErrInvalidAdjustment):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Stock adjustment failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update stock")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// parseID extracts the integer id path parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
