// Package file implements the snapshot store over a flat JSON file, the
// default driver. The format is the original application's data.json:
// pretty-printed with two-space indent.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

// Store persists the snapshot at a fixed path.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a file-backed snapshot store.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the snapshot from disk. A missing, unreadable, or corrupt
// file yields the empty default snapshot rather than an error, matching
// the original behavior of starting fresh.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Snapshot file unreadable, starting from empty state",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return domain.NewSnapshot(), nil
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		s.logger.Warn("Snapshot file corrupt, starting from empty state",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return domain.NewSnapshot(), nil
	}

	// Older files may omit sections entirely.
	if snap.Products == nil {
		snap.Products = []domain.Product{}
	}
	if snap.Customers == nil {
		snap.Customers = []domain.Customer{}
	}
	if snap.Sales == nil {
		snap.Sales = []domain.Sale{}
	}

	return snap, nil
}

// Save writes the full snapshot through a temp file and rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	return nil
}
