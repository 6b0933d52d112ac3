package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/domain"
	"github.com/Paballo854/wings-cafe/internal/middleware"
	"github.com/Paballo854/wings-cafe/internal/service"
	"github.com/Paballo854/wings-cafe/internal/store"
)

const testToken = "demo-token-123"

// memStore is an in-memory snapshot store backing handler tests.
type memStore struct {
	snap *domain.Snapshot
}

func (m *memStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	cp := *m.snap
	cp.Products = append([]domain.Product(nil), m.snap.Products...)
	cp.Customers = append([]domain.Customer(nil), m.snap.Customers...)
	cp.Sales = append([]domain.Sale(nil), m.snap.Sales...)
	return &cp, nil
}

func (m *memStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	m.snap = snap
	return nil
}

// newTestRouter wires the full handler stack over an in-memory snapshot.
func newTestRouter(t *testing.T, snap *domain.Snapshot) (chi.Router, *memStore) {
	t.Helper()

	if snap == nil {
		snap = domain.NewSnapshot()
	}
	ms := &memStore{snap: snap}
	guard := store.NewGuard(ms)
	logger := zap.NewNop()

	authService, err := service.NewAuthService(testToken, "Admin User", "admin@wingscafe.com", "password123")
	if err != nil {
		t.Fatalf("NewAuthService returned error: %v", err)
	}
	inventoryService := service.NewInventoryService(guard, logger)
	customerService := service.NewCustomerService(guard, logger)
	salesService := service.NewSalesService(guard, logger)

	authMiddleware := middleware.AuthMiddleware(authService, logger)

	router := chi.NewRouter()
	NewAuthHandler(authService, logger).RegisterRoutes(router, authMiddleware)
	NewProductHandler(inventoryService, logger).RegisterRoutes(router, authMiddleware)
	NewCustomerHandler(customerService, logger).RegisterRoutes(router, authMiddleware)
	NewSalesHandler(salesService, logger).RegisterRoutes(router, authMiddleware)

	return router, ms
}

func doRequest(t *testing.T, router chi.Router, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
