// Package registry records converted collections in a SQLite database so the
// status command and API can report what exists without opening every file.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Record describes one converted collection.
type Record struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Path       string    `json:"path"`
	ItemCount  int       `json:"item_count"`
	Dimensions int       `json:"dimensions"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Registry is the SQLite-backed collection registry.
type Registry struct {
	db *sql.DB
}

// Open opens or creates the registry database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func Open(dbPath string) (*Registry, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create registry directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Registry{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		path TEXT NOT NULL,
		item_count INTEGER NOT NULL,
		dimensions INTEGER NOT NULL,
		model TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_collections_type ON collections(type);
	`
	_, err := db.Exec(schema)
	return err
}

// Upsert inserts or updates the record for rec.Name. A new record gets a
// generated ID and creation timestamp; an existing one keeps both.
func (r *Registry) Upsert(ctx context.Context, rec *Record) error {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO collections (id, name, type, path, item_count, dimensions, model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			type = excluded.type,
			path = excluded.path,
			item_count = excluded.item_count,
			dimensions = excluded.dimensions,
			model = excluded.model,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.Type, rec.Path, rec.ItemCount, rec.Dimensions, rec.Model, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert collection %q: %w", rec.Name, err)
	}
	return nil
}

// Get returns the record for name, or sql.ErrNoRows if absent.
func (r *Registry) Get(ctx context.Context, name string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, path, item_count, dimensions, model, created_at, updated_at
		FROM collections WHERE name = ?`, name)
	return scanRecord(row)
}

// List returns all records ordered by name.
func (r *Registry) List(ctx context.Context) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, path, item_count, dimensions, model, created_at, updated_at
		FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of registered collections.
func (r *Registry) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections`).Scan(&n)
	return n, err
}

// Close closes the database.
func (r *Registry) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var model sql.NullString
	err := row.Scan(&rec.ID, &rec.Name, &rec.Type, &rec.Path, &rec.ItemCount,
		&rec.Dimensions, &model, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Model = model.String
	return &rec, nil
}
