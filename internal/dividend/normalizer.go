package dividend

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDateFormats are the date layouts the Normalizer recognizes when the
// configuration provides none.
var DefaultDateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"Jan 2, 2006",
}

// NormalizerConfig holds configuration options for the Normalizer.
type NormalizerConfig struct {
	// DateFormats is the ordered set of accepted date layouts.
	DateFormats []string
}

// DefaultNormalizerConfig returns the default normalizer configuration.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{DateFormats: DefaultDateFormats}
}

// Normalizer validates and coerces raw dividend rows into typed Records.
// It is the only place untyped tabular input crosses into the engine.
type Normalizer struct {
	logger      *slog.Logger
	dateFormats []string
}

// NewNormalizer creates a Normalizer with the given configuration.
func NewNormalizer(logger *slog.Logger, config NormalizerConfig) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(config.DateFormats) == 0 {
		config.DateFormats = DefaultDateFormats
	}
	return &Normalizer{
		logger:      logger,
		dateFormats: config.DateFormats,
	}
}

// Normalize partitions rows into accepted Records and rejected rows. Both
// slices preserve the relative input order, every rejected row carries
// exactly one reason, and len(records)+len(rejected) == len(rows).
// Checks run ticker, then date, then amount; the first failure wins.
func (n *Normalizer) Normalize(ctx context.Context, rows []RawRow) ([]Record, []RejectedRow) {
	records := make([]Record, 0, len(rows))
	var rejected []RejectedRow

	for _, row := range rows {
		ticker := strings.ToUpper(strings.TrimSpace(row.Ticker))
		if ticker == "" {
			rejected = append(rejected, RejectedRow{Row: row, Reason: ReasonInvalidTicker})
			continue
		}

		date, ok := n.parseDate(row.Date)
		if !ok {
			rejected = append(rejected, RejectedRow{Row: row, Reason: ReasonInvalidDate})
			continue
		}

		amount, ok := parseAmount(row.Amount)
		if !ok {
			rejected = append(rejected, RejectedRow{Row: row, Reason: ReasonInvalidAmount})
			continue
		}

		records = append(records, Record{Ticker: ticker, Date: date, Amount: amount})
	}

	if len(rejected) > 0 {
		n.logger.WarnContext(ctx, "rejected malformed dividend rows",
			slog.Int("rejected", len(rejected)),
			slog.Int("accepted", len(records)))
	} else {
		n.logger.DebugContext(ctx, "normalized dividend rows",
			slog.Int("accepted", len(records)))
	}

	return records, rejected
}

func (n *Normalizer) parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range n.dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
