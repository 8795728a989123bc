// Package view renders the site's pages and project regions as templ
// components.
package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/sumire/portfolio/internal/domain"
	"github.com/sumire/portfolio/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	FeaturedSkeletonCount = 3
	AllSkeletonCount      = 6

	FeaturedPartialPath = "/partials/projects/featured"
	AllPartialPath      = "/partials/projects/all"

	featuredRegionID = "featured-projects"
	allRegionID      = "all-projects"
)

// Static returns the embedded stylesheet and images, rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer builds page and partial components.
type Renderer struct {
	home      *template.Template
	projects  *template.Template
	errorPage *template.Template
	partials  *template.Template
	siteName  string
	content   Content
	now       func() time.Time
}

// NewRenderer parses the embedded templates.
func NewRenderer(siteName string, content Content) (*Renderer, error) {
	partials, err := template.ParseFS(templateFS, "templates/cards.html")
	if err != nil {
		return nil, fmt.Errorf("parse partial templates: %w", err)
	}
	home, err := parsePage("templates/home.html")
	if err != nil {
		return nil, err
	}
	projects, err := parsePage("templates/projects.html")
	if err != nil {
		return nil, err
	}
	errorPage, err := parsePage("templates/error.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		home:      home,
		projects:  projects,
		errorPage: errorPage,
		partials:  partials,
		siteName:  siteName,
		content:   content,
		now:       time.Now,
	}, nil
}

func parsePage(page string) (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/cards.html", page)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}
	return t, nil
}

type pageData struct {
	Title    string
	SiteName string
	Year     int
	Content  Content
	Section  regionData
	Error    errorData
}

type errorData struct {
	Status  int
	Heading string
	Message string
}

type regionData struct {
	ID             string
	Loading        bool
	PartialURL     string
	Skeletons      []struct{}
	Cards          []cardData
	ShowEmptyState bool
}

type cardData struct {
	Title       string
	Description string
	Image       string
	Tags        []string
	LiveURL     string
	SourceURL   string
	ShowBadge   bool
	Delay       string
}

// HomePage renders the landing page with the featured region still loading.
func (r *Renderer) HomePage() templ.Component {
	return r.page(r.home, r.siteName, featuredRegion(service.Snapshot{}))
}

// ProjectsPage renders the all-projects page with its grid still loading.
func (r *Renderer) ProjectsPage() templ.Component {
	return r.page(r.projects, "All Projects | "+r.siteName, allRegion(service.Snapshot{}))
}

// FeaturedProjects renders the landing-page preview region for snap.
func (r *Renderer) FeaturedProjects(snap service.Snapshot) templ.Component {
	return execute(r.partials, "project-grid", featuredRegion(snap))
}

// AllProjects renders the all-projects region for snap.
func (r *Renderer) AllProjects(snap service.Snapshot) templ.Component {
	return execute(r.partials, "project-grid", allRegion(snap))
}

// ErrorPage renders a full page for a failed browser request.
func (r *Renderer) ErrorPage(status int, message string) templ.Component {
	heading := "Something went wrong"
	if status == http.StatusNotFound {
		heading = "Page not found"
	}
	return execute(r.errorPage, "layout", pageData{
		Title:    fmt.Sprintf("%d | %s", status, r.siteName),
		SiteName: r.siteName,
		Year:     r.now().Year(),
		Content:  r.content,
		Error:    errorData{Status: status, Heading: heading, Message: message},
	})
}

func (r *Renderer) page(t *template.Template, title string, region regionData) templ.Component {
	return execute(t, "layout", pageData{
		Title:    title,
		SiteName: r.siteName,
		Year:     r.now().Year(),
		Content:  r.content,
		Section:  region,
	})
}

func execute(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

func featuredRegion(snap service.Snapshot) regionData {
	return region(featuredRegionID, FeaturedPartialPath, FeaturedSkeletonCount, snap, cardOptions{
		delayStep: 0.2,
	})
}

func allRegion(snap service.Snapshot) regionData {
	return region(allRegionID, AllPartialPath, AllSkeletonCount, snap, cardOptions{
		delayStep:  0.1,
		badges:     true,
		emptyState: true,
	})
}

type cardOptions struct {
	delayStep  float64
	badges     bool
	emptyState bool
}

func region(id, partialURL string, skeletons int, snap service.Snapshot, opts cardOptions) regionData {
	if !snap.State.Resolved() {
		return regionData{
			ID:         id,
			Loading:    true,
			PartialURL: partialURL,
			Skeletons:  make([]struct{}, skeletons),
		}
	}

	cards := make([]cardData, 0, len(snap.Projects))
	for i, p := range snap.Projects {
		cards = append(cards, newCard(p, float64(i)*opts.delayStep, opts.badges))
	}
	return regionData{
		ID:             id,
		Cards:          cards,
		ShowEmptyState: opts.emptyState && len(cards) == 0,
	}
}

func newCard(p domain.Project, delay float64, badges bool) cardData {
	live, _ := p.LiveLink()
	source, _ := p.SourceLink()
	return cardData{
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image(),
		Tags:        p.Tags,
		LiveURL:     live,
		SourceURL:   source,
		ShowBadge:   badges && p.Featured,
		Delay:       fmt.Sprintf("%.1fs", delay),
	}
}
