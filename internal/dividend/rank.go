package dividend

import (
	"sort"
)

// DefaultPalette is the dashboard's qualitative ten-color palette. Color keys
// cycle through it when the ticker count exceeds the palette size.
var DefaultPalette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Ranker assigns a stable presentation order and color key to tickers.
type Ranker struct {
	palette []string
}

// NewRanker creates a Ranker using the given palette, or DefaultPalette when
// empty.
func NewRanker(palette []string) *Ranker {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &Ranker{palette: palette}
}

// Rank orders tickers by the selected metric descending, ties broken by
// ticker name ascending. Rank is the 0-based position; ColorKey is
// palette[rank mod len(palette)]. Calling twice on identical input yields
// identical output.
func (r *Ranker) Rank(summaries map[string]TickerSummary, selector MetricSelector) []RankedTicker {
	if selector == nil {
		selector = MetricTrailingTotal
	}

	type scored struct {
		ticker string
		metric float64
	}
	entries := make([]scored, 0, len(summaries))
	for ticker, summary := range summaries {
		entries = append(entries, scored{ticker: ticker, metric: selector(summary)})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].metric != entries[j].metric {
			return entries[i].metric > entries[j].metric
		}
		return entries[i].ticker < entries[j].ticker
	})

	ranked := make([]RankedTicker, len(entries))
	for i, e := range entries {
		ranked[i] = RankedTicker{
			Ticker:   e.ticker,
			Rank:     i,
			ColorKey: r.palette[i%len(r.palette)],
		}
	}
	return ranked
}
