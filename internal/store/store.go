// Package store persists the working project state and the imported
// standards catalog.
package store

import (
	"context"
	"errors"

	"planfairy/internal/domain"
)

// ErrNoState indicates that no project state has been saved yet.
var ErrNoState = errors.New("no saved project state")

// Store is the persistence port. The SQLite implementation backs normal
// runs; tests use the in-memory implementation.
type Store interface {
	// LoadState returns the saved project state, or ErrNoState when
	// nothing has been saved.
	LoadState(ctx context.Context) (*domain.ProjectState, error)

	// SaveState replaces the saved project state as a whole.
	SaveState(ctx context.Context, state *domain.ProjectState) error

	// LoadCatalog returns the imported standards catalog, keyed
	// "State|Subject|GradeBand". An empty catalog is an empty map.
	LoadCatalog(ctx context.Context) (map[string][]domain.StandardEntry, error)

	// ReplaceCatalog atomically replaces the imported catalog.
	ReplaceCatalog(ctx context.Context, catalog map[string][]domain.StandardEntry) error
}
