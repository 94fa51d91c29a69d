package store

import (
	"context"
	"path/filepath"
	"testing"

	"planfairy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "planfairy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

func TestLoadStateBeforeFirstSave(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadState(context.Background())
	assert.ErrorIs(t, err, ErrNoState)
}

func TestSaveAndLoadStateRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	state := domain.DefaultProjectState()
	state.Form.Topic = "Causes of the American Revolution"
	state.SelectedStandards = []string{"CO.SS.MS.1.3 — Causes and consequences of the American Revolution"}
	state.Drive.FolderName = "Lesson Plans"

	require.NoError(t, s.SaveState(ctx, state))

	loaded, err := s.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestSaveStateReplacesWholeValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := domain.DefaultProjectState()
	first.Form.Topic = "first"
	require.NoError(t, s.SaveState(ctx, first))

	second := domain.DefaultProjectState()
	second.Form.Topic = "second"
	second.SelectedStandards = nil
	require.NoError(t, s.SaveState(ctx, second))

	loaded, err := s.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Form.Topic)
	assert.Empty(t, loaded.SelectedStandards)
}

func TestReplaceAndLoadCatalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	catalog := map[string][]domain.StandardEntry{
		"Colorado|Social Studies|6-8": {
			{Code: "CO.SS.MS.1.1", Text: "Use the historical method of inquiry", Tags: []string{"inquiry", "sources"}},
			{Code: "CO.SS.MS.1.3", Text: "Causes and consequences of the American Revolution", Tags: []string{"revolution"}},
		},
		"Texas|Math|9-12": {
			{Code: "TX.M.A1.1", Text: "Linear functions"},
		},
	}
	require.NoError(t, s.ReplaceCatalog(ctx, catalog))

	loaded, err := s.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	co := loaded["Colorado|Social Studies|6-8"]
	require.Len(t, co, 2)
	assert.Equal(t, "CO.SS.MS.1.1", co[0].Code)
	assert.Equal(t, []string{"inquiry", "sources"}, co[0].Tags)
	assert.Equal(t, "CO.SS.MS.1.3", co[1].Code)
}

func TestReplaceCatalogIsReplaceNotMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceCatalog(ctx, map[string][]domain.StandardEntry{
		"Colorado|Social Studies|6-8": {{Code: "OLD.1", Text: "old"}},
	}))
	require.NoError(t, s.ReplaceCatalog(ctx, map[string][]domain.StandardEntry{
		"Texas|Math|9-12": {{Code: "NEW.1", Text: "new"}},
	}))

	loaded, err := s.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded, "Colorado|Social Studies|6-8")
	require.Len(t, loaded["Texas|Math|9-12"], 1)
}

func TestMemoryStoreMatchesContract(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, err := m.LoadState(ctx)
	assert.ErrorIs(t, err, ErrNoState)

	state := domain.DefaultProjectState()
	state.Form.Topic = "isolated"
	require.NoError(t, m.SaveState(ctx, state))

	// Mutating the caller's copy must not leak into the store.
	state.Form.Topic = "mutated"

	loaded, err := m.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "isolated", loaded.Form.Topic)

	require.NoError(t, m.ReplaceCatalog(ctx, map[string][]domain.StandardEntry{
		"Colorado|Social Studies|6-8": {{Code: "CO.SS.MS.1.1", Text: "inquiry"}},
	}))
	catalog, err := m.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog["Colorado|Social Studies|6-8"], 1)
}
