package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"divicli/internal/dividend"
	apierrors "divicli/internal/errors"
	"divicli/internal/services"
)

// DividendHandler handles dividend engine HTTP requests.
type DividendHandler struct {
	service      *services.DividendService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDividendHandler creates a new dividend handler.
func NewDividendHandler(service *services.DividendService, logger *slog.Logger) *DividendHandler {
	return &DividendHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "dividend")),
		errorHandler: apierrors.NewErrorHandler(logger),
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the dividend routes.
func (h *DividendHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summaries", h.GetSummaries)
	r.Get("/projection", h.GetProjection)
	r.Get("/ranking", h.GetRanking)
	r.Get("/rejected", h.GetRejected)
	r.Post("/drip", h.PostDRIP)
	r.Post("/records/normalize", h.PostNormalize)
}

// SummariesResponse is the GET /api/summaries payload.
type SummariesResponse struct {
	Success       bool                              `json:"success"`
	Summaries     map[string]dividend.TickerSummary `json:"summaries"`
	RejectedCount int                               `json:"rejected_count"`
}

// GetSummaries returns per-ticker summary statistics for the loaded dataset.
func (h *DividendHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	render.JSON(w, r, SummariesResponse{
		Success:       true,
		Summaries:     h.service.Summaries(ctx),
		RejectedCount: len(h.service.Rejected(ctx)),
	})
}

// ProjectionResponse is the GET /api/projection payload.
type ProjectionResponse struct {
	Success  bool                      `json:"success"`
	Series   dividend.ProjectionSeries `json:"series"`
	Currency string                    `json:"currency"`
}

// GetProjection projects a ticker's dividend forward. Query parameters:
// ticker (required), growth (fractional, optional), years (optional).
func (h *DividendHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("ticker", "is required"))
		return
	}

	var growth *float64
	if raw := r.URL.Query().Get("growth"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("growth", "must be a number"))
			return
		}
		growth = &v
	}

	var years *int
	if raw := r.URL.Query().Get("years"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("years", "must be an integer"))
			return
		}
		years = &v
	}

	series, err := h.service.Projection(ctx, ticker, growth, years)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, ProjectionResponse{
		Success:  true,
		Series:   series,
		Currency: dividend.CurrencySymbol(ticker),
	})
}

// RankingResponse is the GET /api/ranking payload.
type RankingResponse struct {
	Success bool                    `json:"success"`
	Metric  string                  `json:"metric"`
	Ranking []dividend.RankedTicker `json:"ranking"`
}

// GetRanking returns the ranked ticker list for the requested metric.
func (h *DividendHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	metric := r.URL.Query().Get("metric")
	ranking, err := h.service.Ranking(ctx, metric)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if metric == "" {
		metric = services.MetricTrailingTotal
	}

	render.JSON(w, r, RankingResponse{Success: true, Metric: metric, Ranking: ranking})
}

// RejectedResponse is the GET /api/rejected payload.
type RejectedResponse struct {
	Success  bool                   `json:"success"`
	Rejected []dividend.RejectedRow `json:"rejected"`
}

// GetRejected returns the rows rejected during the last dataset load.
func (h *DividendHandler) GetRejected(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, RejectedResponse{Success: true, Rejected: h.service.Rejected(r.Context())})
}

// DRIPResponse is the POST /api/drip payload.
type DRIPResponse struct {
	Success bool                `json:"success"`
	Years   []dividend.DRIPYear `json:"years"`
}

// PostDRIP runs a dividend reinvestment simulation from a JSON body.
func (h *DividendHandler) PostDRIP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in dividend.DRIPInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error()))
		return
	}

	years, err := h.service.DRIP(ctx, in)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, DRIPResponse{Success: true, Years: years})
}

// NormalizeRequest is the POST /api/records/normalize body.
type NormalizeRequest struct {
	Rows []dividend.RawRow `json:"rows" validate:"required"`
}

// NormalizeResponse is the POST /api/records/normalize payload.
type NormalizeResponse struct {
	Success  bool                   `json:"success"`
	Records  []dividend.Record      `json:"records"`
	Rejected []dividend.RejectedRow `json:"rejected"`
}

// PostNormalize validates raw rows without loading them as the dataset.
func (h *DividendHandler) PostNormalize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("rows", "are required"))
		return
	}

	records, rejected := h.service.Normalize(ctx, req.Rows)
	render.JSON(w, r, NormalizeResponse{Success: true, Records: records, Rejected: rejected})
}
