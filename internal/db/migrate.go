package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/udisondev/dungeonrpg/internal/db/migrations"
)

// RunMigrations brings the schema at dsn up to date. Running it against an
// up-to-date schema is a no-op.
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	version, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		return err
	}
	slog.Info("schema up to date", "version", version)
	return nil
}
