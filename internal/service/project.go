package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sumire/portfolio/internal/domain"
	"github.com/sumire/portfolio/internal/metrics"
)

// ProjectSource defines the hosted table access consumed by ProjectService.
type ProjectSource interface {
	Query(ctx context.Context, q domain.TableQuery) ([]domain.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

// ProjectConfig holds loader settings.
type ProjectConfig struct {
	// FetchTimeout bounds each read. Zero leaves it to the caller's context.
	FetchTimeout time.Duration
}

// ListParams filters the JSON project listing.
type ListParams struct {
	Featured *bool
	Limit    int
}

// ProjectService builds loaders and serves project lookups.
type ProjectService struct {
	source  ProjectSource
	cfg     ProjectConfig
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewProjectService creates a new ProjectService. m may be nil.
func NewProjectService(source ProjectSource, cfg ProjectConfig, log *slog.Logger, m *metrics.Metrics) *ProjectService {
	return &ProjectService{
		source:  source,
		cfg:     cfg,
		log:     log,
		metrics: m,
	}
}

// NewFeaturedLoader returns a loader for the landing-page preview: up to
// FeaturedLimit featured projects, newest first.
func (s *ProjectService) NewFeaturedLoader() *Loader {
	return s.newLoader("featured", domain.FeaturedProjectsQuery(domain.FeaturedLimit))
}

// NewAllLoader returns a loader for the all-projects page: every project,
// newest first.
func (s *ProjectService) NewAllLoader() *Loader {
	return s.newLoader("all", domain.AllProjectsQuery())
}

func (s *ProjectService) newLoader(name string, q domain.TableQuery) *Loader {
	return &Loader{
		name:    name,
		source:  s.source,
		query:   q,
		timeout: s.cfg.FetchTimeout,
		log:     s.log,
		metrics: s.metrics,
	}
}

// List returns projects newest first. Unlike the loaders, errors are returned
// to the caller.
func (s *ProjectService) List(ctx context.Context, params ListParams) ([]domain.Project, error) {
	q := domain.AllProjectsQuery()
	if params.Featured != nil {
		q = q.Where("featured", *params.Featured)
	}
	q.Limit = params.Limit

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	projects, err := s.source.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get retrieves a single project.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.source.FindByID(ctx, id)
}

func (s *ProjectService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.FetchTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.FetchTimeout)
	}
	return ctx, func() {}
}
