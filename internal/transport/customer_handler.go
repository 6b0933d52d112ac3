package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/middleware"
	"github.com/Paballo854/wings-cafe/internal/service"
)

// CreateCustomerRequest represents the customer creation payload.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerRequest represents a partial customer update.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerHandler handles HTTP requests for customer operations
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles fetching all customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read customers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customers)
}

// Create handles customer creation
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Customer creation validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(r.Context(), service.CustomerCreate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.logger.Error("Customer creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, customer)
}

// Update handles partial customer updates
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req UpdateCustomerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Customer update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(r.Context(), id, service.CustomerUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}

		h.logger.Error("Customer update failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

// Delete handles customer deletion
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.customerService.DeleteCustomer(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}

		h.logger.Error("Customer deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}
