package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sumire/portfolio/internal/metrics"
	"github.com/sumire/portfolio/internal/view"
)

// RouterConfig holds what NewRouter needs besides the handlers.
type RouterConfig struct {
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
}

// NewRouter wires middleware and routes.
func NewRouter(projects *ProjectHandler, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(projects.view)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAccept, echo.HeaderContentType, "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
		ExposeHeaders: []string{echo.HeaderXRequestID},
		MaxAge:        300,
	}))
	if cfg.Metrics != nil {
		e.Use(metrics.Middleware(cfg.Metrics))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	e.StaticFS("/static", view.Static())
	e.FileFS("/placeholder.svg", "placeholder.svg", view.Static())

	// Pages render skeletons; htmx then fetches the partials, one read each.
	e.GET("/", projects.Home)
	e.GET("/projects", projects.AllProjectsPage)
	e.GET(view.FeaturedPartialPath, projects.FeaturedPartial)
	e.GET(view.AllPartialPath, projects.AllPartial)

	api := e.Group("/api/v1")
	api.GET("/projects", projects.List)
	api.GET("/projects/:id", projects.Get)

	return e
}
