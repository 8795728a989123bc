package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/sumire/portfolio/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("find: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{"fetch failed", fmt.Errorf("%w: projects", domain.ErrFetchFailed), http.StatusBadGateway, "fetch_failed"},
		{"validation", &domain.ValidationError{Field: "limit", Message: "too big"}, http.StatusBadRequest, "validation_error"},
		{"echo method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "method_not_allowed"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestMapError_ValidationDetails(t *testing.T) {
	_, apiErr := mapError(&domain.ValidationError{Field: "limit", Message: "failed on 'max' validation"})
	if assert.Len(t, apiErr.Details, 1) {
		assert.Equal(t, "limit", apiErr.Details[0].Field)
	}
}
