package database

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
)

// RunMigrations executes every SQL file under the dialect's subdirectory of
// fsys that has not been recorded yet
func (db *DB) RunMigrations(ctx context.Context, fsys fs.FS) error {
	// Create migrations table if it doesn't exist
	if _, err := db.ExecContext(ctx, db.Dialect.CreateMigrationsTableQuery()); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dir := db.Dialect.MigrationsSubdir()
	files, err := fs.Glob(fsys, path.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	// Sort files to ensure they run in order
	sort.Strings(files)

	applied, err := db.appliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}

	for _, file := range files {
		filename := path.Base(file)
		if applied[filename] {
			continue
		}

		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		if err := db.executeMigration(ctx, filename, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		log.Printf("Migration completed: %s", filename)
	}

	return nil
}

// appliedMigrations returns the filenames already recorded
func (db *DB) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT filename FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}
	return applied, rows.Err()
}

// executeMigration runs a migration and records it in one transaction
func (db *DB) executeMigration(ctx context.Context, filename, content string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, content); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations (filename) VALUES (?)", filename); err != nil {
		return err
	}
	return tx.Commit()
}
