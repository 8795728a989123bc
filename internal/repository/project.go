package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sumire/portfolio/internal/domain"
)

const projectColumns = `id, title, description, image_url, tags, project_url, github_url, featured, created_at`

// queryable lists the tables and columns a TableQuery may reference.
var queryable = map[string]map[string]bool{
	domain.ProjectsTable: {
		"id":          true,
		"title":       true,
		"description": true,
		"image_url":   true,
		"project_url": true,
		"github_url":  true,
		"featured":    true,
		"created_at":  true,
	},
}

func init() {
	// modernc.org/sqlite registers as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// ProjectRepository reads projects from a SQL database.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Query runs a single table read described by q.
func (r *ProjectRepository) Query(ctx context.Context, q domain.TableQuery) ([]domain.Project, error) {
	query, args, err := buildSelect(q)
	if err != nil {
		return nil, err
	}

	projects := []domain.Project{}
	if err := r.db.SelectContext(ctx, &projects, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", domain.ErrFetchFailed, q.Table, err)
	}
	return projects, nil
}

// FindByID retrieves a project by its ID.
func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.GetContext(ctx, &project,
		r.db.Rebind(`SELECT `+projectColumns+` FROM projects WHERE id = ?`), id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find project %s: %v", domain.ErrFetchFailed, id, err)
	}
	return &project, nil
}

// buildSelect renders q with '?' placeholders. Identifiers come from the
// allow-list only; values are always bound.
func buildSelect(q domain.TableQuery) (string, []any, error) {
	columns, ok := queryable[q.Table]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown table %q", domain.ErrInvalidInput, q.Table)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(projectColumns)
	b.WriteString(" FROM ")
	b.WriteString(q.Table)

	args := make([]any, 0, len(q.Filters))
	for i, f := range q.Filters {
		if !columns[f.Column] {
			return "", nil, fmt.Errorf("%w: unknown column %q", domain.ErrInvalidInput, f.Column)
		}
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(f.Column)
		b.WriteString(" = ?")
		args = append(args, f.Value)
	}

	if q.OrderBy != "" {
		if !columns[q.OrderBy] {
			return "", nil, fmt.Errorf("%w: unknown column %q", domain.ErrInvalidInput, q.OrderBy)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(q.OrderBy)
		if q.Descending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}

	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	return b.String(), args, nil
}
