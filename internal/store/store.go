// Package store defines the persistence port: durable storage for the full
// application snapshot, plus the single-writer guard that serializes every
// load-mutate-save cycle against it.
package store

import (
	"context"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

// Store loads and saves the full snapshot. Load returns the empty default
// snapshot when no prior state exists or it is unreadable; Save writes the
// whole snapshot in one logical write.
type Store interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}
