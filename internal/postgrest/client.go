// Package postgrest reads tables through a Supabase/PostgREST endpoint.
package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/sumire/portfolio/internal/domain"
)

// Client implements service.ProjectSource over the PostgREST HTTP API.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates a Client for a Supabase project URL such as
// https://xyz.supabase.co. A zero timeout leaves requests unbounded.
func NewClient(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("missing api key")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	// The anon key doubles as the bearer token.
	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: apiKey,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = timeout

	return &Client{
		baseURL: u,
		apiKey:  apiKey,
		http:    httpClient,
		log:     log,
	}, nil
}

// Query runs a single table read described by q.
func (c *Client) Query(ctx context.Context, q domain.TableQuery) ([]domain.Project, error) {
	if q.Table == "" {
		return nil, fmt.Errorf("%w: missing table", domain.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		params.Add(f.Column, "eq."+formatValue(f.Value))
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var projects []domain.Project
	if err := c.get(ctx, q.Table, params, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// FindByID retrieves a project by its ID.
func (c *Client) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("id", "eq."+id.String())
	params.Set("limit", "1")

	var projects []domain.Project
	if err := c.get(ctx, domain.ProjectsTable, params, &projects); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, domain.ErrNotFound
	}
	return &projects[0], nil
}

func (c *Client) get(ctx context.Context, table string, params url.Values, out any) error {
	u := *c.baseURL
	u.Path = u.Path + "/rest/v1/" + url.PathEscape(table)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, table, newAPIError(resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrFetchFailed, table, err)
	}

	c.log.DebugContext(ctx, "postgrest read", "table", table, "query", u.RawQuery)
	return nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
