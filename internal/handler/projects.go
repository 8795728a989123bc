package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sumire/portfolio/internal/domain"
	"github.com/sumire/portfolio/internal/service"
	"github.com/sumire/portfolio/internal/view"
)

// ProjectHandler serves the project pages, their loader partials and the
// JSON project API.
type ProjectHandler struct {
	projects *service.ProjectService
	view     *view.Renderer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService, renderer *view.Renderer) *ProjectHandler {
	return &ProjectHandler{projects: projects, view: renderer}
}

// Home handles GET /.
func (h *ProjectHandler) Home(c echo.Context) error {
	return HTML(c, http.StatusOK, h.view.HomePage())
}

// AllProjectsPage handles GET /projects.
func (h *ProjectHandler) AllProjectsPage(c echo.Context) error {
	return HTML(c, http.StatusOK, h.view.ProjectsPage())
}

// FeaturedPartial handles GET /partials/projects/featured. A failed read
// renders as an empty preview.
func (h *ProjectHandler) FeaturedPartial(c echo.Context) error {
	snap := h.projects.NewFeaturedLoader().Load(c.Request().Context())
	return HTML(c, http.StatusOK, h.view.FeaturedProjects(snap))
}

// AllPartial handles GET /partials/projects/all. A failed read renders the
// empty state.
func (h *ProjectHandler) AllPartial(c echo.Context) error {
	snap := h.projects.NewAllLoader().Load(c.Request().Context())
	return HTML(c, http.StatusOK, h.view.AllProjects(snap))
}

type listProjectsRequest struct {
	Featured string `query:"featured" validate:"omitempty,oneof=true false"`
	Limit    int    `query:"limit" validate:"min=0,max=100"`
}

// List handles GET /api/v1/projects.
func (h *ProjectHandler) List(c echo.Context) error {
	var req listProjectsRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	params := service.ListParams{Limit: req.Limit}
	if req.Featured != "" {
		featured := req.Featured == "true"
		params.Featured = &featured
	}

	projects, err := h.projects.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, projects)
}

type getProjectRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

// Get handles GET /api/v1/projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	var req getProjectRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projects.Get(c.Request().Context(), uuid.MustParse(req.ID))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, project)
}
