package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// withMigrator exposes the pool as a *sql.DB configured for goose.
func (r *Repository) withMigrator(logger *slog.Logger, fn func(db *sql.DB) error) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	if logger != nil {
		goose.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	}
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	return fn(db)
}

// Migrate applies every pending migration.
func (r *Repository) Migrate(ctx context.Context, logger *slog.Logger) error {
	return r.withMigrator(logger, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func (r *Repository) MigrateDown(ctx context.Context, logger *slog.Logger) error {
	return r.withMigrator(logger, func(db *sql.DB) error {
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return nil
	})
}

// MigrationVersion returns the current schema version.
func (r *Repository) MigrationVersion(ctx context.Context) (int64, error) {
	var version int64
	err := r.withMigrator(nil, func(db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}
