package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divicli/internal/config"
	"divicli/internal/dividend"
	"divicli/internal/services"
)

func testService(t *testing.T) *services.DividendService {
	t.Helper()
	svc := services.NewDividendService(slog.Default(), config.EngineConfig{
		MaxHorizonYears:     30,
		DefaultHorizonYears: 15,
		DefaultGrowthRate:   0.04,
		PaymentsPerYear:     4,
		DateFormats:         []string{"2006-01-02"},
		Palette:             dividend.DefaultPalette,
	})
	svc.LoadRows(context.Background(), []dividend.RawRow{
		{Ticker: "AAA", Date: "2023-01-01", Amount: "1.0"},
		{Ticker: "AAA", Date: "2024-01-01", Amount: "1.1"},
		{Ticker: "BBB", Date: "2023-01-01", Amount: "2.0"},
		{Ticker: "bad", Date: "junk", Amount: "1"},
	})
	return svc
}

func testRouter(t *testing.T) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	handler := NewDividendHandler(testService(t), slog.Default())
	r.Route("/api", handler.RegisterRoutes)
	return r
}

func doRequest(t *testing.T, router chi.Router, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetSummaries(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/summaries", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SummariesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Summaries, 2)
	assert.Equal(t, 1, resp.RejectedCount)
	require.Contains(t, resp.Summaries, "AAA")
	assert.InDelta(t, 2.1, resp.Summaries["AAA"].TrailingTotal, 1e-9)
}

func TestGetProjection(t *testing.T) {
	router := testRouter(t)

	t.Run("success with explicit parameters", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/projection?ticker=AAA&growth=0.05&years=3", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProjectionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "AAA", resp.Series.Ticker)
		require.Len(t, resp.Series.Values, 3)
		assert.InDelta(t, 1.05, resp.Series.Values[0].Amount, 1e-9)
		assert.Equal(t, "$", resp.Currency)
	})

	t.Run("missing ticker", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/projection", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	})

	t.Run("unknown ticker", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/projection?ticker=NOPE", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "TICKER_NOT_FOUND")
	})

	t.Run("horizon above cap", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/projection?ticker=AAA&years=31", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_HORIZON")
	})

	t.Run("non-numeric growth", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/projection?ticker=AAA&growth=fast", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRanking(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/ranking", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, services.MetricTrailingTotal, resp.Metric)
	require.Len(t, resp.Ranking, 2)
	assert.Equal(t, "AAA", resp.Ranking[0].Ticker)
	assert.Equal(t, 0, resp.Ranking[0].Rank)
	assert.Equal(t, dividend.DefaultPalette[0], resp.Ranking[0].ColorKey)

	rec = doRequest(t, router, http.MethodGet, "/api/ranking?metric=sharpe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRejected(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/rejected", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RejectedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, dividend.ReasonInvalidDate, resp.Rejected[0].Reason)
}

func TestPostDRIP(t *testing.T) {
	router := testRouter(t)

	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(dividend.DRIPInput{
			InitialShares:  100,
			SharePrice:     10,
			AnnualDividend: 1,
			Years:          2,
		})
		rec := doRequest(t, router, http.MethodPost, "/api/drip", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DRIPResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Years, 3)
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/drip", []byte("{"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		body, _ := json.Marshal(dividend.DRIPInput{SharePrice: 0, Years: 2})
		rec := doRequest(t, router, http.MethodPost, "/api/drip", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostNormalize(t *testing.T) {
	router := testRouter(t)

	body := []byte(`{"rows":[
		{"ticker":"aaa","date":"2023-01-01","amount":"1.5"},
		{"ticker":"","date":"2023-01-01","amount":"1.5"}
	]}`)
	rec := doRequest(t, router, http.MethodPost, "/api/records/normalize", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "AAA", resp.Records[0].Ticker)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, dividend.ReasonInvalidTicker, resp.Rejected[0].Reason)

	rec = doRequest(t, router, http.MethodPost, "/api/records/normalize", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler()
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"status":"ok"`))
}
