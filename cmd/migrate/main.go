package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/sumire/portfolio/internal/config"
	"github.com/sumire/portfolio/internal/migrate"
)

func main() {
	if err := run(); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	seed := flag.Bool("seed", false, "insert the sample projects after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	driver, dsn := "pgx", cfg.DatabaseURL
	switch cfg.ProjectSource {
	case config.SourceSQLite:
		driver, dsn = "sqlite", cfg.SQLitePath
	case config.SourcePostgREST:
		return fmt.Errorf("PROJECT_SOURCE=postgrest is read-only; point DATABASE_URL at the Supabase database and use postgres")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("connect %s: %w", driver, err)
	}
	defer db.Close()

	if err := migrate.Run(ctx, db, logger); err != nil {
		return err
	}

	if *seed {
		n, err := migrate.Seed(ctx, db, migrate.SampleProjects())
		if err != nil {
			return err
		}
		logger.Info("seeded projects", "inserted", n)
	}

	logger.Info("migrations complete", "driver", driver)
	return nil
}
