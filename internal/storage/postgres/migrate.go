package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// Migration sets of the two stores.
const (
	PrimaryMigrations   = "migrations/primary"
	SecondaryMigrations = "migrations/secondary"
)

func migrationFS(dir string) (fs.FS, error) {
	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("open migrations %s: %w", dir, err)
	}
	return sub, nil
}

// Migrate applies the embedded migrations of dir to the database behind dsn.
func Migrate(ctx context.Context, dsn, dir string, logger *slog.Logger) error {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	fsys, err := migrationFS(dir)
	if err != nil {
		return err
	}

	db := stdlib.OpenDB(*connConfig)
	defer db.Close()

	return applyMigrations(ctx, db, fsys, logger)
}

func applyMigrations(ctx context.Context, db *sql.DB, fsys fs.FS, logger *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}
