package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"divicli/internal/config"
	"divicli/internal/dividend"
	apierrors "divicli/internal/errors"
)

// DividendService wires the ingestion output through the dividend engine and
// holds the currently loaded dataset for the HTTP layer. The engine stages
// stay pure; this is the only place that keeps state between requests, and
// every mutation replaces the derived data wholesale.
type DividendService struct {
	logger     *slog.Logger
	normalizer *dividend.Normalizer
	aggregator *dividend.Aggregator
	projector  *dividend.Projector
	ranker     *dividend.Ranker
	drip       *dividend.DRIPSimulator
	engineCfg  config.EngineConfig

	mu        sync.RWMutex
	records   []dividend.Record
	rejected  []dividend.RejectedRow
	summaries map[string]dividend.TickerSummary
	rankCache map[string][]dividend.RankedTicker
}

// NewDividendService creates a dividend service from the engine configuration.
func NewDividendService(logger *slog.Logger, engineCfg config.EngineConfig) *DividendService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "dividend"))

	return &DividendService{
		logger:     logger,
		normalizer: dividend.NewNormalizer(logger, dividend.NormalizerConfig{DateFormats: engineCfg.DateFormats}),
		aggregator: dividend.NewAggregator(logger),
		projector:  dividend.NewProjector(logger, dividend.ProjectorConfig{MaxHorizonYears: engineCfg.MaxHorizonYears}),
		ranker:     dividend.NewRanker(engineCfg.Palette),
		drip:       dividend.NewDRIPSimulator(logger, engineCfg.MaxHorizonYears),
		engineCfg:  engineCfg,
		summaries:  map[string]dividend.TickerSummary{},
		rankCache:  map[string][]dividend.RankedTicker{},
	}
}

// LoadRows normalizes and aggregates a fresh dataset, replacing any prior
// one. Returns the accepted and rejected counts.
func (s *DividendService) LoadRows(ctx context.Context, rows []dividend.RawRow) (int, int) {
	records, rejected := s.normalizer.Normalize(ctx, rows)
	summaries := s.aggregator.Aggregate(ctx, records)

	s.mu.Lock()
	s.records = records
	s.rejected = rejected
	s.summaries = summaries
	s.rankCache = map[string][]dividend.RankedTicker{}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("accepted", len(records)),
		slog.Int("rejected", len(rejected)),
		slog.Int("tickers", len(summaries)))

	return len(records), len(rejected)
}

// Normalize runs the normalizer without touching the loaded dataset.
func (s *DividendService) Normalize(ctx context.Context, rows []dividend.RawRow) ([]dividend.Record, []dividend.RejectedRow) {
	return s.normalizer.Normalize(ctx, rows)
}

// Summaries returns the per-ticker summaries of the loaded dataset.
func (s *DividendService) Summaries(ctx context.Context) map[string]dividend.TickerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]dividend.TickerSummary, len(s.summaries))
	for ticker, summary := range s.summaries {
		out[ticker] = summary
	}
	return out
}

// Rejected returns the rows rejected when the dataset was loaded.
func (s *DividendService) Rejected(ctx context.Context) []dividend.RejectedRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dividend.RejectedRow(nil), s.rejected...)
}

// Projection projects a ticker's dividend forward. The baseline is the
// ticker's chronologically first positive dividend, matching the dashboard's
// behavior; growth and horizon fall back to the configured defaults when nil.
func (s *DividendService) Projection(ctx context.Context, ticker string, growth *float64, horizonYears *int) (dividend.ProjectionSeries, error) {
	g := s.engineCfg.DefaultGrowthRate
	if growth != nil {
		g = *growth
	}
	h := s.engineCfg.DefaultHorizonYears
	if horizonYears != nil {
		h = *horizonYears
	}

	baseline, err := s.baselineFor(ticker)
	if err != nil {
		return dividend.ProjectionSeries{}, err
	}

	series, err := s.projector.Project(ctx, baseline, g, h)
	if err != nil {
		return dividend.ProjectionSeries{}, err
	}
	series.Ticker = ticker
	return series, nil
}

// baselineFor finds a ticker's first positive dividend in chronological
// order.
func (s *DividendService) baselineFor(ticker string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var group []dividend.Record
	for _, rec := range s.records {
		if rec.Ticker == ticker {
			group = append(group, rec)
		}
	}
	if len(group) == 0 {
		return 0, apierrors.TickerNotFoundError(ticker)
	}

	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Date.Before(group[j].Date)
	})
	for _, rec := range group {
		if rec.Amount > 0 {
			return rec.Amount, nil
		}
	}
	return 0, apierrors.ErrNoBaseline
}

// Ranking returns the ranked ticker list for a metric, memoized per dataset.
// Memoization only short-circuits recomputation; results are always
// identical to a fresh Rank call on the current summaries.
func (s *DividendService) Ranking(ctx context.Context, metric string) ([]dividend.RankedTicker, error) {
	selector, err := selectorFor(metric)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	if cached, ok := s.rankCache[metric]; ok {
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.rankCache[metric]; ok {
		return cached, nil
	}
	ranked := s.ranker.Rank(s.summaries, selector)
	s.rankCache[metric] = ranked
	return ranked, nil
}

// DRIP runs a reinvestment simulation with the configured default payment
// frequency.
func (s *DividendService) DRIP(ctx context.Context, in dividend.DRIPInput) ([]dividend.DRIPYear, error) {
	if in.PaymentsPerYear == 0 {
		in.PaymentsPerYear = s.engineCfg.PaymentsPerYear
	}
	return s.drip.Simulate(ctx, in)
}

// Ranking metrics accepted by the API.
const (
	MetricTrailingTotal = "trailing_total"
	MetricLatestAmount  = "latest_amount"
	MetricRecordCount   = "record_count"
)

func selectorFor(metric string) (dividend.MetricSelector, error) {
	switch metric {
	case "", MetricTrailingTotal:
		return dividend.MetricTrailingTotal, nil
	case MetricLatestAmount:
		return dividend.MetricLatestAmount, nil
	case MetricRecordCount:
		return dividend.MetricRecordCount, nil
	default:
		return nil, apierrors.ErrValidation("metric", "must be one of trailing_total, latest_amount, record_count")
	}
}
