package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divicli/internal/config"
	"divicli/internal/dividend"
	apierrors "divicli/internal/errors"
)

func engineConfig() config.EngineConfig {
	return config.EngineConfig{
		MaxHorizonYears:     30,
		DefaultHorizonYears: 15,
		DefaultGrowthRate:   0.04,
		PaymentsPerYear:     4,
		DateFormats:         []string{"2006-01-02"},
		Palette:             dividend.DefaultPalette,
	}
}

func loadedService(t *testing.T) *DividendService {
	t.Helper()
	svc := NewDividendService(slog.Default(), engineConfig())
	accepted, rejected := svc.LoadRows(context.Background(), []dividend.RawRow{
		{Ticker: "AAA", Date: "2023-01-01", Amount: "1.0"},
		{Ticker: "AAA", Date: "2024-01-01", Amount: "1.1"},
		{Ticker: "BBB", Date: "2023-01-01", Amount: "2.0"},
		{Ticker: "ZRO", Date: "2023-01-01", Amount: "0"},
		{Ticker: "", Date: "2023-01-01", Amount: "9.9"},
	})
	require.Equal(t, 4, accepted)
	require.Equal(t, 1, rejected)
	return svc
}

func TestDividendService_Summaries(t *testing.T) {
	svc := loadedService(t)

	summaries := svc.Summaries(context.Background())
	require.Len(t, summaries, 3)
	assert.InDelta(t, 2.1, summaries["AAA"].TrailingTotal, 1e-9)
	require.NotNil(t, summaries["AAA"].AvgGrowthRate)
	assert.InDelta(t, 0.1, *summaries["AAA"].AvgGrowthRate, 1e-9)
	assert.Nil(t, summaries["BBB"].AvgGrowthRate)
}

func TestDividendService_Rejected(t *testing.T) {
	svc := loadedService(t)
	rejected := svc.Rejected(context.Background())
	require.Len(t, rejected, 1)
	assert.Equal(t, dividend.ReasonInvalidTicker, rejected[0].Reason)
}

func TestDividendService_Projection(t *testing.T) {
	ctx := context.Background()
	svc := loadedService(t)

	t.Run("defaults applied", func(t *testing.T) {
		series, err := svc.Projection(ctx, "AAA", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "AAA", series.Ticker)
		assert.Equal(t, 15, series.HorizonYears)
		assert.InDelta(t, 0.04, series.GrowthRate, 1e-9)
		// Baseline is the first positive dividend, not the latest.
		assert.InDelta(t, 1.0, series.Baseline, 1e-9)
	})

	t.Run("explicit growth and horizon", func(t *testing.T) {
		growth, horizon := 0.05, 3
		series, err := svc.Projection(ctx, "AAA", &growth, &horizon)
		require.NoError(t, err)
		require.Len(t, series.Values, 3)
		assert.InDelta(t, 1.05, series.Values[0].Amount, 1e-9)
	})

	t.Run("unknown ticker", func(t *testing.T) {
		_, err := svc.Projection(ctx, "NOPE", nil, nil)
		require.Error(t, err)
		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "TICKER_NOT_FOUND", apiErr.ErrorCode)
	})

	t.Run("all-zero history has no baseline", func(t *testing.T) {
		_, err := svc.Projection(ctx, "ZRO", nil, nil)
		require.Error(t, err)
		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "NO_BASELINE", apiErr.ErrorCode)
	})

	t.Run("invalid horizon propagates", func(t *testing.T) {
		horizon := 31
		_, err := svc.Projection(ctx, "AAA", nil, &horizon)
		require.Error(t, err)
		assert.ErrorIs(t, err, dividend.ErrInvalidHorizon)
	})
}

func TestDividendService_Ranking(t *testing.T) {
	ctx := context.Background()
	svc := loadedService(t)

	ranked, err := svc.Ranking(ctx, MetricTrailingTotal)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "AAA", ranked[0].Ticker)
	assert.Equal(t, "BBB", ranked[1].Ticker)
	assert.Equal(t, "ZRO", ranked[2].Ticker)

	// Memoized result matches a fresh computation.
	again, err := svc.Ranking(ctx, MetricTrailingTotal)
	require.NoError(t, err)
	assert.Equal(t, ranked, again)

	// Empty metric defaults to trailing_total but caches separately.
	byDefault, err := svc.Ranking(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ranked, byDefault)

	_, err = svc.Ranking(ctx, "sharpe")
	assert.Error(t, err)
}

func TestDividendService_RankingCacheInvalidatedOnLoad(t *testing.T) {
	ctx := context.Background()
	svc := loadedService(t)

	ranked, err := svc.Ranking(ctx, MetricTrailingTotal)
	require.NoError(t, err)
	require.Equal(t, "AAA", ranked[0].Ticker)

	svc.LoadRows(ctx, []dividend.RawRow{
		{Ticker: "NEW", Date: "2023-01-01", Amount: "100"},
	})

	ranked, err = svc.Ranking(ctx, MetricTrailingTotal)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "NEW", ranked[0].Ticker)
}

func TestDividendService_DRIP(t *testing.T) {
	ctx := context.Background()
	svc := loadedService(t)

	years, err := svc.DRIP(ctx, dividend.DRIPInput{
		InitialShares:  100,
		SharePrice:     10,
		AnnualDividend: 1,
		Years:          2,
	})
	require.NoError(t, err)
	require.Len(t, years, 3)

	// Config default of quarterly payments was applied.
	explicit, err := svc.DRIP(ctx, dividend.DRIPInput{
		InitialShares:   100,
		SharePrice:      10,
		AnnualDividend:  1,
		Years:           2,
		PaymentsPerYear: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, years)
}
