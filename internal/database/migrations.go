package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
)

const createMigrationsTableSQL = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		id SERIAL PRIMARY KEY,
		migration_name VARCHAR(255) NOT NULL UNIQUE,
		applied_at TIMESTAMPTZ DEFAULT NOW()
	)`

// RunMigrations applies every pending .sql migration from the given
// filesystem in lexical order. Each migration runs in its own
// transaction together with its schema_migrations bookkeeping row, so
// a failed migration leaves no half-applied state behind.
func (db *DB) RunMigrations(ctx context.Context, fsys fs.FS) error {
	if err := db.Exec(ctx, createMigrationsTableSQL); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	applied, err := db.appliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	pending := 0
	for _, name := range names {
		if applied[name] {
			continue
		}
		if err := db.applyMigration(ctx, fsys, name); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		pending++
		db.logger.Info("migration_applied", fmt.Sprintf("Applied migration %s", name), "startup", map[string]interface{}{
			"migration": name,
		})
	}

	db.logger.Debug("migrations_complete", "Schema is up to date", "startup", map[string]interface{}{
		"total":   len(names),
		"applied": pending,
	})
	return nil
}

// appliedMigrations returns the set of migration names already applied
func (db *DB) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := db.Query(ctx, "SELECT migration_name FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// applyMigration executes one migration file and records it, atomically
func (db *DB) applyMigration(ctx context.Context, fsys fs.FS, name string) error {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (migration_name) VALUES ($1)", name); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit(ctx)
}
