package storage

import (
	"context"
	"database/sql"
	"fmt"

	"channel-pricer/internal/storage/migrations"

	"go.uber.org/zap"
)

const dialect = "postgres"

func RunMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "storage.RunMigrations"

	logger.Info("Running database migrations...")

	if err := migrations.Up(ctx, db, dialect); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

func RollbackMigration(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "storage.RollbackMigration"

	logger.Info("Rolling back last migration...")

	if err := migrations.Down(ctx, db, dialect); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	logger.Info("Migration rollback completed")
	return nil
}

func Status(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "storage.Status"

	logger.Info("Checking migration status...")

	if err := migrations.Status(ctx, db, dialect); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	return nil
}
