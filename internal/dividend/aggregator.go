package dividend

import (
	"context"
	"log/slog"
	"sort"
)

// Aggregator groups normalized records by ticker and computes summary
// statistics. Every call recomputes from scratch; summaries are never
// patched incrementally.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate computes one TickerSummary per distinct ticker. Within a ticker,
// records are ordered by date ascending with ties broken by input order, so
// the result is identical regardless of how the input slice was shuffled.
func (a *Aggregator) Aggregate(ctx context.Context, records []Record) map[string]TickerSummary {
	groups := make(map[string][]Record)
	for _, rec := range records {
		groups[rec.Ticker] = append(groups[rec.Ticker], rec)
	}

	summaries := make(map[string]TickerSummary, len(groups))
	for ticker, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
		summaries[ticker] = summarize(ticker, group)
	}

	a.logger.DebugContext(ctx, "aggregated dividend records",
		slog.Int("records", len(records)),
		slog.Int("tickers", len(summaries)))

	return summaries
}

// summarize computes the statistics for a single chronologically sorted group.
func summarize(ticker string, group []Record) TickerSummary {
	summary := TickerSummary{
		Ticker:      ticker,
		RecordCount: len(group),
	}

	var total float64
	for _, rec := range group {
		total += rec.Amount
	}
	summary.TrailingTotal = total
	summary.LatestAmount = group[len(group)-1].Amount
	summary.AvgGrowthRate = averageGrowthRate(group)

	return summary
}

// averageGrowthRate returns the arithmetic mean of consecutive-period
// percentage changes, or nil when no usable pair exists. Pairs whose prior
// amount is zero are skipped; an all-zero history therefore yields nil,
// which callers must distinguish from zero growth.
func averageGrowthRate(group []Record) *float64 {
	var sum float64
	var pairs int
	for i := 1; i < len(group); i++ {
		prev := group[i-1].Amount
		if prev <= 0 {
			continue
		}
		sum += (group[i].Amount - prev) / prev
		pairs++
	}
	if pairs == 0 {
		return nil
	}
	mean := sum / float64(pairs)
	return &mean
}
