// Package sqlite provides a SQLite-backed kv.Driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Driver implements kv.Driver using SQLite as the storage backend.
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed kv driver.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	// Open the database using the github.com/mattn/go-sqlite3 driver (registered as "sqlite3")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database only lives as long as its single connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	d := &Driver{db: db}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return d, nil
}

// migrate creates the necessary tables if they don't exist.
func (d *Driver) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Get returns the requested entries, or all entries when no keys are given.
func (d *Driver) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	query := `SELECT key, value FROM kv_entries`
	args := make([]any, 0, len(keys))

	if len(keys) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
		query += ` WHERE key IN (` + placeholders + `)`
		for _, k := range keys {
			args = append(args, k)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	result := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		result[key] = json.RawMessage(value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

// Set upserts every entry in a single transaction.
func (d *Driver) Set(ctx context.Context, items map[string]json.RawMessage) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO kv_entries (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	for k, v := range items {
		if !json.Valid(v) {
			return fmt.Errorf("value for key %q is not valid JSON", k)
		}
		if _, err := tx.ExecContext(ctx, query, k, string(v)); err != nil {
			return fmt.Errorf("failed to upsert %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Driver) Close() error {
	return d.db.Close()
}
