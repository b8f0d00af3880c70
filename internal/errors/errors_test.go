package errors

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divicli/internal/dividend"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", err.ErrorCode)
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "api error passes through",
			err:        ErrTickerNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "TICKER_NOT_FOUND",
		},
		{
			name:       "wrapped invalid horizon",
			err:        fmt.Errorf("project: %w", dividend.ErrInvalidHorizon),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_HORIZON",
		},
		{
			name:       "wrapped invalid growth",
			err:        fmt.Errorf("project: %w", dividend.ErrInvalidGrowthRate),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_GROWTH_RATE",
		},
		{
			name:       "wrapped invalid baseline",
			err:        fmt.Errorf("project: %w", dividend.ErrInvalidBaseline),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_GROWTH_RATE",
		},
		{
			name:       "drip input error",
			err:        fmt.Errorf("simulate: %w", dividend.ErrInvalidDRIPInput),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_DRIP_INPUT",
		},
		{
			name:       "context deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "TIMEOUT",
		},
		{
			name:       "unknown error is internal",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.ErrorCode)
		})
	}
}

func TestErrorHandler_HandleError(t *testing.T) {
	h := NewErrorHandler(slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/projection", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, fmt.Errorf("project: %w", dividend.ErrInvalidHorizon))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_HORIZON")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestErrorHandler_NilError(t *testing.T) {
	h := NewErrorHandler(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(rec, req, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("horizon_years", "must be positive")
	require.NotNil(t, err.Details)
	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "horizon_years", detail.Field)
}
