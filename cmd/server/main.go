package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	"github.com/sumire/portfolio/internal/config"
	"github.com/sumire/portfolio/internal/handler"
	"github.com/sumire/portfolio/internal/metrics"
	"github.com/sumire/portfolio/internal/migrate"
	"github.com/sumire/portfolio/internal/postgrest"
	"github.com/sumire/portfolio/internal/repository"
	"github.com/sumire/portfolio/internal/service"
	"github.com/sumire/portfolio/internal/view"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	source, closer, err := openSource(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	projectSvc := service.NewProjectService(source, service.ProjectConfig{
		FetchTimeout: cfg.FetchTimeout,
	}, logger, m)

	renderer, err := view.NewRenderer(cfg.SiteName, view.DefaultContent())
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	e := handler.NewRouter(handler.NewProjectHandler(projectSvc, renderer), handler.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Metrics:     m,
		Gatherer:    reg,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "source", cfg.ProjectSource)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSource connects the configured project table backend.
func openSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (service.ProjectSource, io.Closer, error) {
	switch cfg.ProjectSource {
	case config.SourcePostgREST:
		key, err := postgrest.InspectKey(cfg.SupabaseAnonKey)
		if err != nil {
			return nil, nil, fmt.Errorf("inspect supabase key: %w", err)
		}
		if key.Expired(time.Now()) {
			return nil, nil, fmt.Errorf("supabase key expired at %s", key.ExpiresAt.Format(time.RFC3339))
		}
		if key.Role == postgrest.RoleServiceRole {
			slog.Warn("supabase key has the service_role role; use the anon key for a public site")
		}

		client, err := postgrest.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.FetchTimeout, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("create postgrest client: %w", err)
		}
		slog.Info("postgrest source configured", "url", cfg.SupabaseURL, "role", key.Role)
		return client, nopCloser{}, nil

	case config.SourceSQLite:
		db, err := sqlx.Connect("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		db.SetMaxOpenConns(1)
		if err := migrate.Run(ctx, db, logger); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		slog.Info("sqlite source opened", "path", cfg.SQLitePath)
		return repository.NewProjectRepository(db), db, nil

	default:
		db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		slog.Info("database connected")
		return repository.NewProjectRepository(db), db, nil
	}
}
