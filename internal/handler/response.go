package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/sumire/portfolio/internal/domain"
	"github.com/sumire/portfolio/internal/view"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

// APIError represents an error in the API response.
type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the standard envelope.
func JSON(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Data: data})
}

// HTML renders a component as the response body.
func HTML(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response())
}

// sentinelErrors maps domain errors to their HTTP form, checked in order.
var sentinelErrors = []struct {
	err    error
	status int
	code   string
	msg    string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input", "The request is invalid"},
	{domain.ErrFetchFailed, http.StatusBadGateway, "fetch_failed", "Projects could not be loaded"},
}

// NewHTTPErrorHandler returns echo's global error handler. API routes and
// non-browser clients get the JSON envelope; browsers get an error page.
func NewHTTPErrorHandler(renderer *view.Renderer) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, apiErr := mapError(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request().Context(), "request failed",
				"path", c.Request().URL.Path,
				"status", status,
				"error", err,
			)
		}

		var sendErr error
		switch {
		case c.Request().Method == http.MethodHead:
			sendErr = c.NoContent(status)
		case renderer != nil && wantsHTML(c):
			sendErr = HTML(c, status, renderer.ErrorPage(status, apiErr.Message))
		default:
			sendErr = c.JSON(status, Envelope{Error: &apiErr})
		}
		if sendErr != nil {
			slog.Error("failed to send error response", "error", sendErr)
		}
	}
}

// wantsHTML reports whether the error should be shown as a page.
func wantsHTML(c echo.Context) bool {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return false
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

func mapError(err error) (int, APIError) {
	// echo's own errors: unknown route, method not allowed, bind failures.
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, APIError{
			Code:    strings.ReplaceAll(strings.ToLower(http.StatusText(echoErr.Code)), " ", "_"),
			Message: msg,
		}
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, APIError{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: []FieldError{
				{Field: validationErr.Field, Message: validationErr.Message},
			},
		}
	}

	for _, s := range sentinelErrors {
		if errors.Is(err, s.err) {
			return s.status, APIError{Code: s.code, Message: s.msg}
		}
	}

	return http.StatusInternalServerError, APIError{
		Code:    "internal_error",
		Message: "An unexpected error occurred",
	}
}
