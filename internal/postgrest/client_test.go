package postgrest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/portfolio/internal/domain"
)

const testKey = "test-anon-key"

const projectsJSON = `[
  {"id":"0b9a0c52-2f0e-4d5b-8a0e-1a2b3c4d5e01","title":"Newer","description":"d","image_url":null,
   "tags":["Go","HTMX"],"project_url":"https://example.com","github_url":"#","featured":true,
   "created_at":"2025-03-02T10:00:00.123456+00:00"},
  {"id":"0b9a0c52-2f0e-4d5b-8a0e-1a2b3c4d5e02","title":"Older","description":"d","image_url":"https://img/1.png",
   "tags":[],"project_url":null,"github_url":null,"featured":true,
   "created_at":"2025-03-01T10:00:00+00:00"}
]`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, testKey, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestClient_QueryFeatured(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/projects", r.URL.Path)
		assert.Equal(t, testKey, r.Header.Get("apikey"))
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("select"))
		assert.Equal(t, "eq.true", q.Get("featured"))
		assert.Equal(t, "created_at.desc", q.Get("order"))
		assert.Equal(t, "3", q.Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, projectsJSON)
	})

	projects, err := c.Query(context.Background(), domain.FeaturedProjectsQuery(domain.FeaturedLimit))
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Newer", projects[0].Title)
	assert.Equal(t, domain.Tags{"Go", "HTMX"}, projects[0].Tags)
	assert.Nil(t, projects[0].ImageURL)
	assert.True(t, projects[0].CreatedAt.After(projects[1].CreatedAt))
	assert.Equal(t, "https://img/1.png", projects[1].Image())
	assert.Empty(t, projects[1].Tags)
}

func TestClient_QueryAllOmitsLimitAndFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("limit"))
		assert.False(t, q.Has("featured"))
		assert.Equal(t, "created_at.desc", q.Get("order"))
		_, _ = io.WriteString(w, `[]`)
	})

	projects, err := c.Query(context.Background(), domain.AllProjectsQuery())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestClient_QueryErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":"42P01","message":"relation \"public.projects\" does not exist","details":null,"hint":null}`)
	})

	_, err := c.Query(context.Background(), domain.AllProjectsQuery())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "42P01", apiErr.Code)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestClient_QueryPlainTextError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.Query(context.Background(), domain.AllProjectsQuery())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestClient_QueryMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"not":"an array"}`)
	})

	_, err := c.Query(context.Background(), domain.AllProjectsQuery())
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_QueryHonoursContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Query(ctx, domain.AllProjectsQuery())
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_FindByID(t *testing.T) {
	id := uuid.MustParse("0b9a0c52-2f0e-4d5b-8a0e-1a2b3c4d5e01")

	t.Run("Found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eq."+id.String(), r.URL.Query().Get("id"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			_, _ = io.WriteString(w, projectsJSON)
		})

		p, err := c.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `[]`)
		})

		_, err := c.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNewClient_Validation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewClient("https://x.supabase.co", "", 0, log)
	assert.Error(t, err)

	_, err = NewClient("not a url", testKey, 0, log)
	assert.Error(t, err)

	c, err := NewClient("https://x.supabase.co/", testKey, 0, log)
	require.NoError(t, err)
	assert.Equal(t, "https://x.supabase.co", c.baseURL.String())
}
