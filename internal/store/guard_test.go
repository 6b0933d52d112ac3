package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

// memStore is a minimal in-memory Store for exercising the guard.
type memStore struct {
	snap  *domain.Snapshot
	saves int
}

func (m *memStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	// Hand out a copy the way the file store hands out fresh decodes
	cp := *m.snap
	cp.Products = append([]domain.Product(nil), m.snap.Products...)
	cp.Customers = append([]domain.Customer(nil), m.snap.Customers...)
	cp.Sales = append([]domain.Sale(nil), m.snap.Sales...)
	return &cp, nil
}

func (m *memStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	m.snap = snap
	m.saves++
	return nil
}

func TestUpdatePersistsMutation(t *testing.T) {
	ms := &memStore{snap: domain.NewSnapshot()}
	guard := NewGuard(ms)
	ctx := context.Background()

	err := guard.Update(ctx, func(snap *domain.Snapshot) error {
		snap.Products = append(snap.Products, domain.Product{ID: 1, Name: "Beef Wings", Quantity: 15})
		return nil
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if ms.saves != 1 {
		t.Fatalf("saves = %d, want 1", ms.saves)
	}
	if len(ms.snap.Products) != 1 {
		t.Fatalf("products after update = %d, want 1", len(ms.snap.Products))
	}
}

func TestUpdateErrorSkipsSave(t *testing.T) {
	ms := &memStore{snap: domain.NewSnapshot()}
	guard := NewGuard(ms)

	wantErr := errors.New("insufficient stock")
	err := guard.Update(context.Background(), func(snap *domain.Snapshot) error {
		snap.Products = append(snap.Products, domain.Product{ID: 1})
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want the callback error unchanged", err)
	}
	if ms.saves != 0 {
		t.Fatalf("saves = %d, want 0 after failed update", ms.saves)
	}
	if len(ms.snap.Products) != 0 {
		t.Fatal("failed update must not become visible")
	}
}

func TestViewDoesNotSave(t *testing.T) {
	ms := &memStore{snap: domain.NewSnapshot()}
	ms.snap.Products = []domain.Product{{ID: 1, Name: "Beef Wings", Quantity: 15}}
	guard := NewGuard(ms)

	var seen int
	err := guard.View(context.Background(), func(snap *domain.Snapshot) error {
		seen = len(snap.Products)
		return nil
	})
	if err != nil {
		t.Fatalf("View returned error: %v", err)
	}
	if seen != 1 {
		t.Fatalf("view saw %d products, want 1", seen)
	}
	if ms.saves != 0 {
		t.Fatalf("saves = %d, want 0 after view", ms.saves)
	}
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	ms := &memStore{snap: domain.NewSnapshot()}
	ms.snap.Products = []domain.Product{{ID: 1, Name: "Beef Wings", Quantity: 100}}
	guard := NewGuard(ms)

	// Each goroutine performs a full read-check-decrement cycle. With the
	// guard every cycle sees the previous cycle's write, so exactly 100
	// single-unit deductions succeed and the rest are rejected.
	const workers = 150
	var wg sync.WaitGroup
	var mu sync.Mutex
	rejected := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := guard.Update(context.Background(), func(snap *domain.Snapshot) error {
				if snap.Products[0].Quantity < 1 {
					return errors.New("insufficient stock")
				}
				snap.Products[0].Quantity--
				return nil
			})
			if err != nil {
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if ms.snap.Products[0].Quantity != 0 {
		t.Fatalf("final quantity = %d, want 0", ms.snap.Products[0].Quantity)
	}
	if rejected != workers-100 {
		t.Fatalf("rejected = %d, want %d", rejected, workers-100)
	}
}
