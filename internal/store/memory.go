package store

import (
	"context"
	"sync"

	"planfairy/internal/domain"
)

// MemoryStore is an in-memory Store used by tests and dry runs.
type MemoryStore struct {
	mu      sync.Mutex
	state   *domain.ProjectState
	catalog map[string][]domain.StandardEntry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{catalog: map[string][]domain.StandardEntry{}}
}

func (m *MemoryStore) LoadState(context.Context) (*domain.ProjectState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, ErrNoState
	}
	return m.state.Clone(), nil
}

func (m *MemoryStore) SaveState(_ context.Context, state *domain.ProjectState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	return nil
}

func (m *MemoryStore) LoadCatalog(context.Context) (map[string][]domain.StandardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]domain.StandardEntry, len(m.catalog))
	for key, entries := range m.catalog {
		out[key] = append([]domain.StandardEntry(nil), entries...)
	}
	return out, nil
}

func (m *MemoryStore) ReplaceCatalog(_ context.Context, catalog map[string][]domain.StandardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = make(map[string][]domain.StandardEntry, len(catalog))
	for key, entries := range catalog {
		m.catalog[key] = append([]domain.StandardEntry(nil), entries...)
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*SQLiteStore)(nil)
