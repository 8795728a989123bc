//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sumire/portfolio/internal/domain"
	"github.com/sumire/portfolio/internal/migrate"
	"github.com/sumire/portfolio/internal/repository"
	"github.com/sumire/portfolio/internal/service"
)

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "portfolio",
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "pass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:pass@%s:%s/portfolio?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgres_MigrateSeedAndLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	ctx := context.Background()
	db := startPostgres(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	require.NoError(t, migrate.Run(ctx, db, logger))
	// Second run must be a no-op.
	require.NoError(t, migrate.Run(ctx, db, logger))

	samples := migrate.SampleProjects()
	n, err := migrate.Seed(ctx, db, samples)
	require.NoError(t, err)
	assert.Equal(t, len(samples), n)

	n, err = migrate.Seed(ctx, db, samples)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (title, description, tags, featured, created_at) VALUES ($1, $2, $3, false, $4)`,
		"Side Project", "not featured", []string{"Go", "HTMX"}, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	repo := repository.NewProjectRepository(db)
	svc := service.NewProjectService(repo, service.ProjectConfig{}, logger, nil)

	featured := svc.NewFeaturedLoader().Load(ctx)
	assert.Equal(t, service.StateSuccess, featured.State)
	require.Len(t, featured.Projects, domain.FeaturedLimit)
	for i := 1; i < len(featured.Projects); i++ {
		assert.False(t, featured.Projects[i].CreatedAt.After(featured.Projects[i-1].CreatedAt))
	}
	for _, p := range featured.Projects {
		assert.True(t, p.Featured)
	}

	all := svc.NewAllLoader().Load(ctx)
	assert.Equal(t, service.StateSuccess, all.State)
	require.Len(t, all.Projects, len(samples)+1)
	assert.Equal(t, "Side Project", all.Projects[0].Title)
	assert.Equal(t, domain.Tags{"Go", "HTMX"}, all.Projects[0].Tags)
	assert.Equal(t, domain.PlaceholderImage, all.Projects[0].Image())

	got, err := repo.FindByID(ctx, samples[0].ID)
	require.NoError(t, err)
	assert.Equal(t, samples[0].Title, got.Title)
	assert.Equal(t, samples[0].Tags, got.Tags)
	_, ok := got.LiveLink()
	assert.False(t, ok)
}
