package dividend

import (
	"time"
)

// RawRow is a single untyped row as handed over by the ingestion layer.
// Fields are kept as text until the Normalizer has validated them.
type RawRow struct {
	Ticker string `json:"ticker"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// Reason identifies why a raw row was rejected during normalization.
type Reason string

const (
	// ReasonInvalidTicker means the ticker was empty after trimming.
	ReasonInvalidTicker Reason = "InvalidTicker"
	// ReasonInvalidDate means the date matched none of the recognized formats.
	ReasonInvalidDate Reason = "InvalidDate"
	// ReasonInvalidAmount means the amount was non-numeric or negative.
	ReasonInvalidAmount Reason = "InvalidAmount"
)

// RejectedRow pairs a rejected raw row with the single reason it failed.
type RejectedRow struct {
	Row    RawRow `json:"row"`
	Reason Reason `json:"reason"`
}

// Record is a validated, immutable dividend record produced by the Normalizer.
type Record struct {
	Ticker string    `json:"ticker" validate:"required"`
	Date   time.Time `json:"date" validate:"required"`
	Amount float64   `json:"amount" validate:"min=0"`
}

// TickerSummary holds derived per-ticker statistics. AvgGrowthRate is nil
// when fewer than two usable consecutive periods exist; nil means "no data",
// never zero growth.
type TickerSummary struct {
	Ticker        string   `json:"ticker"`
	RecordCount   int      `json:"record_count"`
	LatestAmount  float64  `json:"latest_amount"`
	TrailingTotal float64  `json:"trailing_total"`
	AvgGrowthRate *float64 `json:"avg_growth_rate,omitempty"`
}

// ProjectionPoint is a single projected year in a ProjectionSeries.
type ProjectionPoint struct {
	YearOffset int     `json:"year_offset"`
	Amount     float64 `json:"amount"`
}

// ProjectionSeries is a deterministic forward projection of dividend payouts.
// Values are ordered by YearOffset 1..HorizonYears.
type ProjectionSeries struct {
	Ticker       string            `json:"ticker,omitempty"`
	Baseline     float64           `json:"baseline_amount"`
	GrowthRate   float64           `json:"growth_rate"`
	HorizonYears int               `json:"horizon_years"`
	Values       []ProjectionPoint `json:"values"`
}

// RankedTicker assigns a stable presentation order and color to a ticker.
type RankedTicker struct {
	Ticker   string `json:"ticker"`
	Rank     int    `json:"rank"`
	ColorKey string `json:"color_key"`
}

// MetricSelector extracts the ranking metric from a summary.
type MetricSelector func(TickerSummary) float64

// Predefined metric selectors for ranking.
var (
	MetricTrailingTotal MetricSelector = func(s TickerSummary) float64 { return s.TrailingTotal }
	MetricLatestAmount  MetricSelector = func(s TickerSummary) float64 { return s.LatestAmount }
	MetricRecordCount   MetricSelector = func(s TickerSummary) float64 { return float64(s.RecordCount) }
)
