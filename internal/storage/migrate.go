package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func MigrateUp(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, db, ".up.sql", false)
}

func MigrateDown(ctx context.Context, db *sql.DB) error {
	return applyMigrations(ctx, db, ".down.sql", true)
}

func applyMigrations(ctx context.Context, db *sql.DB, suffix string, reverse bool) error {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	if reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if _, execErr := db.ExecContext(ctx, string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}
