package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("featured", 10*time.Millisecond, nil)
	m.ObserveFetch("featured", 10*time.Millisecond, errors.New("boom"))
	m.ObserveFetch("all", time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchCounter.WithLabelValues("featured", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchCounter.WithLabelValues("featured", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchCounter.WithLabelValues("all", "ok")))
}

func TestObserveFetch_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveFetch("all", time.Second, nil) })
}

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	m := New(prometheus.NewRegistry())
	e := echo.New()
	e.Use(Middleware(m))
	e.GET("/projects/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.String(http.StatusOK, "ok")
	})

	for _, path := range []string{"/projects/a", "/projects/b", "/projects/missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/projects/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/projects/:id", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight.WithLabelValues("/projects/:id")))
}
