package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// PlaceholderLink is stored in project_url/github_url by editors who have
	// no link yet. It is treated the same as a missing link.
	PlaceholderLink = "#"

	// PlaceholderImage is served when a project has no image.
	PlaceholderImage = "/placeholder.svg"
)

// Project represents a portfolio entry from the projects table.
type Project struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	Tags        Tags      `json:"tags" db:"tags"`
	ProjectURL  *string   `json:"project_url" db:"project_url"`
	GitHubURL   *string   `json:"github_url" db:"github_url"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Image returns the image to display for the project.
func (p Project) Image() string {
	if p.ImageURL == nil || strings.TrimSpace(*p.ImageURL) == "" {
		return PlaceholderImage
	}
	return *p.ImageURL
}

// LiveLink returns the project's public URL, if it has a usable one.
func (p Project) LiveLink() (string, bool) {
	return usableLink(p.ProjectURL)
}

// SourceLink returns the project's repository URL, if it has a usable one.
func (p Project) SourceLink() (string, bool) {
	return usableLink(p.GitHubURL)
}

func usableLink(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	link := strings.TrimSpace(*v)
	if link == "" || link == PlaceholderLink {
		return "", false
	}
	return link, true
}
