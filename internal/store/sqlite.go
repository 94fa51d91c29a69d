package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"planfairy/internal/domain"
)

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS project_state (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS standards (
		catalog_key TEXT NOT NULL,
		position    INTEGER NOT NULL,
		code        TEXT NOT NULL,
		text        TEXT NOT NULL,
		tags        TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (catalog_key, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_standards_key ON standards(catalog_key)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// SQLiteStore implements Store using a SQLite database. The project state
// is persisted as a single JSON document; the standards catalog is held
// relationally and replaced in one transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore over an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) LoadState(ctx context.Context) (*domain.ProjectState, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM project_state WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("loading project state: %w", err)
	}

	var state domain.ProjectState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("decoding project state: %w", err)
	}
	return &state, nil
}

func (s *SQLiteStore) SaveState(ctx context.Context, state *domain.ProjectState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding project state: %w", err)
	}

	query := `INSERT INTO project_state (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving project state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadCatalog(ctx context.Context) (map[string][]domain.StandardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT catalog_key, code, text, tags FROM standards ORDER BY catalog_key, position`)
	if err != nil {
		return nil, fmt.Errorf("loading standards: %w", err)
	}
	defer rows.Close()

	catalog := map[string][]domain.StandardEntry{}
	for rows.Next() {
		var key, code, text, tags string
		if err := rows.Scan(&key, &code, &text, &tags); err != nil {
			return nil, fmt.Errorf("scanning standard: %w", err)
		}
		entry := domain.StandardEntry{Code: code, Text: text}
		if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags for %s: %w", code, err)
		}
		catalog[key] = append(catalog[key], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading standards: %w", err)
	}
	return catalog, nil
}

func (s *SQLiteStore) ReplaceCatalog(ctx context.Context, catalog map[string][]domain.StandardEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting catalog transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM standards`); err != nil {
		return fmt.Errorf("clearing standards: %w", err)
	}

	keys := make([]string, 0, len(catalog))
	for key := range catalog {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		for pos, entry := range catalog[key] {
			tags, err := json.Marshal(entry.Tags)
			if err != nil {
				return fmt.Errorf("encoding tags for %s: %w", entry.Code, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO standards (catalog_key, position, code, text, tags) VALUES (?, ?, ?, ?, ?)`,
				key, pos, entry.Code, entry.Text, string(tags)); err != nil {
				return fmt.Errorf("inserting standard %s: %w", entry.Code, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	committed = true
	return nil
}
