package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/domain"
	"github.com/Paballo854/wings-cafe/internal/store"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerCreate carries the fields accepted when creating a customer.
type CustomerCreate struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerUpdate carries a partial update; nil fields are left unchanged.
type CustomerUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// CustomerService defines the interface for customer business logic.
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, input CustomerCreate) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, input CustomerUpdate) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type customerService struct {
	guard  *store.Guard
	logger *zap.Logger
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(guard *store.Guard, logger *zap.Logger) CustomerService {
	return &customerService{guard: guard, logger: logger}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := s.guard.View(ctx, func(snap *domain.Snapshot) error {
		customers = append([]domain.Customer{}, snap.Customers...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, input CustomerCreate) (*domain.Customer, error) {
	var created domain.Customer
	err := s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		now := time.Now()
		customer := domain.Customer{
			ID:        domain.NextID(now, customerIDs(snap.Customers)...),
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			Address:   input.Address,
			CreatedAt: now,
		}
		snap.Customers = append(snap.Customers, customer)
		created = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Customer created", zap.Int64("customer_id", created.ID))
	return &created, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, input CustomerUpdate) (*domain.Customer, error) {
	var updated domain.Customer
	err := s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		idx := -1
		for i := range snap.Customers {
			if snap.Customers[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrCustomerNotFound
		}

		c := &snap.Customers[idx]
		if input.Name != nil {
			c.Name = *input.Name
		}
		if input.Email != nil {
			c.Email = *input.Email
		}
		if input.Phone != nil {
			c.Phone = *input.Phone
		}
		if input.Address != nil {
			c.Address = *input.Address
		}

		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.guard.Update(ctx, func(snap *domain.Snapshot) error {
		filtered := snap.Customers[:0:0]
		for _, c := range snap.Customers {
			if c.ID != id {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == len(snap.Customers) {
			return ErrCustomerNotFound
		}
		snap.Customers = filtered
		return nil
	})
}

func customerIDs(customers []domain.Customer) []int64 {
	ids := make([]int64, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}
	return ids
}
