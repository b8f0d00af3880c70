package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"divicli/internal/dividend"
)

// ErrorHandler provides centralized error handling for the HTTP layer.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError maps any error to a structured API error response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	apiErr := toAPIError(err)
	render.Render(w, r, NewErrorResponse(apiErr))
}

// toAPIError maps engine and transport errors onto API error codes.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return New(http.StatusGatewayTimeout, "TIMEOUT", "The request took too long to process")
	case errors.Is(err, dividend.ErrInvalidHorizon):
		return NewWithDetails(ErrInvalidHorizon.StatusCode, ErrInvalidHorizon.ErrorCode, ErrInvalidHorizon.Message, err.Error())
	case errors.Is(err, dividend.ErrInvalidGrowthRate), errors.Is(err, dividend.ErrInvalidBaseline):
		return NewWithDetails(ErrInvalidGrowth.StatusCode, ErrInvalidGrowth.ErrorCode, ErrInvalidGrowth.Message, err.Error())
	case errors.Is(err, dividend.ErrInvalidDRIPInput):
		return NewWithDetails(http.StatusBadRequest, "INVALID_DRIP_INPUT", "Invalid DRIP input", err.Error())
	default:
		return ErrInternalServer
	}
}
