package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sumire/portfolio/internal/domain"
)

// SampleProjects are the projects shown on the site before any real ones
// are entered. Their links are placeholders, so cards render without
// actions until an editor fills them in.
func SampleProjects() []domain.Project {
	placeholder := domain.PlaceholderLink
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Project{
		{
			ID:          uuid.MustParse("6f1c2a54-4f5e-4d3b-9a51-0b6c8c1e0a01"),
			Title:       "E-Commerce Mobile App",
			Description: "A modern e-commerce mobile application with seamless user experience, intuitive navigation, and beautiful product showcases.",
			Tags:        domain.Tags{"UI Design", "Mobile", "E-commerce", "Figma"},
			ProjectURL:  &placeholder,
			GitHubURL:   &placeholder,
			Featured:    true,
			CreatedAt:   base.Add(48 * time.Hour),
		},
		{
			ID:          uuid.MustParse("6f1c2a54-4f5e-4d3b-9a51-0b6c8c1e0a02"),
			Title:       "Analytics Dashboard",
			Description: "Clean and comprehensive analytics dashboard for data visualization with real-time updates and interactive charts.",
			Tags:        domain.Tags{"Web Design", "Dashboard", "Analytics", "React"},
			ProjectURL:  &placeholder,
			GitHubURL:   &placeholder,
			Featured:    true,
			CreatedAt:   base.Add(24 * time.Hour),
		},
		{
			ID:          uuid.MustParse("6f1c2a54-4f5e-4d3b-9a51-0b6c8c1e0a03"),
			Title:       "Design System",
			Description: "Complete design system with components, guidelines, and documentation for consistent product experiences.",
			Tags:        domain.Tags{"Design System", "Components", "Documentation"},
			ProjectURL:  &placeholder,
			GitHubURL:   &placeholder,
			Featured:    true,
			CreatedAt:   base,
		},
	}
}

// Seed inserts projects, skipping IDs that already exist.
func Seed(ctx context.Context, db *sqlx.DB, projects []domain.Project) (int, error) {
	dialect, err := DialectFor(db.DriverName())
	if err != nil {
		return 0, err
	}

	query := db.Rebind(`INSERT INTO projects (id, title, description, image_url, tags, project_url, github_url, featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`)

	inserted := 0
	for _, p := range projects {
		var tags any = p.Tags
		if dialect == Postgres {
			tags = append([]string{}, p.Tags...)
		}
		res, err := db.ExecContext(ctx, query,
			p.ID.String(), p.Title, p.Description, p.ImageURL, tags,
			p.ProjectURL, p.GitHubURL, p.Featured, p.CreatedAt.UTC())
		if err != nil {
			return inserted, fmt.Errorf("seed project %s: %w", p.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}
