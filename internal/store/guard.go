package store

import (
	"context"
	"sync"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

// Guard serializes access to a Store. All reads and read-modify-write
// cycles in the process go through one Guard, so two concurrent sales can
// never both validate against the same pre-decrement stock and oversell.
type Guard struct {
	mu    sync.Mutex
	store Store
}

// NewGuard wraps a Store in a single-writer guard.
func NewGuard(s Store) *Guard {
	return &Guard{store: s}
}

// View loads the snapshot and passes it to fn under the lock. fn must not
// retain the snapshot past its return.
func (g *Guard) View(ctx context.Context, fn func(*domain.Snapshot) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := g.store.Load(ctx)
	if err != nil {
		return err
	}
	return fn(snap)
}

// Update runs one load-mutate-save cycle under the lock. fn mutates the
// snapshot in place; if it returns an error nothing is saved and the error
// is returned as-is, so callers can map domain failures without a partial
// write ever becoming visible.
func (g *Guard) Update(ctx context.Context, fn func(*domain.Snapshot) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := g.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return g.store.Save(ctx, snap)
}
