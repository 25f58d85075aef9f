// Package store persists extracted palettes in sqlite so a cover that was
// themed once can still be themed when it can no longer be fetched.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
)

// ErrNotFound is returned when no palette is stored under a key.
var ErrNotFound = errors.New("palette not found")

// Store is a sqlite-backed palette table. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := database.Exec(pragma); err != nil {
			database.Close()
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", pragma, err)
		}
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := runMigrations(database); err != nil {
		database.Close()
		return nil, err
	}

	return &Store{db: database}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the palette stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (palette.Palette, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT palette_json FROM palettes WHERE cache_key = ?", key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return palette.Palette{}, ErrNotFound
	}
	if err != nil {
		return palette.Palette{}, fmt.Errorf("query palette %s: %w", key, err)
	}

	var p palette.Palette
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return palette.Palette{}, fmt.Errorf("decode palette %s: %w", key, err)
	}
	return p, nil
}

// Put stores p under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key, reference string, p palette.Palette) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode palette %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO palettes(cache_key, reference, palette_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			reference = excluded.reference,
			palette_json = excluded.palette_json,
			updated_at = excluded.updated_at
	`, key, reference, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store palette %s: %w", key, err)
	}
	return nil
}

// Delete removes the palette stored under key. Deleting a missing key is not
// an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM palettes WHERE cache_key = ?", key); err != nil {
		return fmt.Errorf("delete palette %s: %w", key, err)
	}
	return nil
}

// Count returns the number of stored palettes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM palettes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count palettes: %w", err)
	}
	return n, nil
}
