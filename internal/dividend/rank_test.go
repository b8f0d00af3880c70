package dividend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summariesFixture() map[string]TickerSummary {
	return map[string]TickerSummary{
		"AAA": {Ticker: "AAA", RecordCount: 3, LatestAmount: 1.1, TrailingTotal: 3.2},
		"BBB": {Ticker: "BBB", RecordCount: 1, LatestAmount: 2.0, TrailingTotal: 2.0},
		"CCC": {Ticker: "CCC", RecordCount: 5, LatestAmount: 0.4, TrailingTotal: 9.9},
	}
}

func TestRanker_Rank(t *testing.T) {
	r := NewRanker(nil)

	ranked := r.Rank(summariesFixture(), MetricTrailingTotal)

	require.Len(t, ranked, 3)
	assert.Equal(t, []RankedTicker{
		{Ticker: "CCC", Rank: 0, ColorKey: DefaultPalette[0]},
		{Ticker: "AAA", Rank: 1, ColorKey: DefaultPalette[1]},
		{Ticker: "BBB", Rank: 2, ColorKey: DefaultPalette[2]},
	}, ranked)
}

func TestRanker_TiesBreakByTickerName(t *testing.T) {
	r := NewRanker(nil)
	summaries := map[string]TickerSummary{
		"ZZZ": {Ticker: "ZZZ", TrailingTotal: 5},
		"AAA": {Ticker: "AAA", TrailingTotal: 5},
		"MMM": {Ticker: "MMM", TrailingTotal: 5},
	}

	ranked := r.Rank(summaries, MetricTrailingTotal)

	require.Len(t, ranked, 3)
	assert.Equal(t, "AAA", ranked[0].Ticker)
	assert.Equal(t, "MMM", ranked[1].Ticker)
	assert.Equal(t, "ZZZ", ranked[2].Ticker)
}

func TestRanker_Deterministic(t *testing.T) {
	r := NewRanker(nil)
	first := r.Rank(summariesFixture(), MetricLatestAmount)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, r.Rank(summariesFixture(), MetricLatestAmount))
	}
}

func TestRanker_PermutationWithStrictlyIncreasingRank(t *testing.T) {
	r := NewRanker(nil)
	summaries := summariesFixture()

	ranked := r.Rank(summaries, MetricRecordCount)

	require.Len(t, ranked, len(summaries))
	seen := map[string]bool{}
	for i, rt := range ranked {
		assert.Equal(t, i, rt.Rank)
		assert.False(t, seen[rt.Ticker], "duplicate ticker %s", rt.Ticker)
		seen[rt.Ticker] = true
		assert.Contains(t, summaries, rt.Ticker)
	}
}

func TestRanker_PaletteCycles(t *testing.T) {
	palette := []string{"#111111", "#222222"}
	r := NewRanker(palette)
	summaries := map[string]TickerSummary{
		"AAA": {Ticker: "AAA", TrailingTotal: 4},
		"BBB": {Ticker: "BBB", TrailingTotal: 3},
		"CCC": {Ticker: "CCC", TrailingTotal: 2},
		"DDD": {Ticker: "DDD", TrailingTotal: 1},
	}

	ranked := r.Rank(summaries, MetricTrailingTotal)

	require.Len(t, ranked, 4)
	assert.Equal(t, "#111111", ranked[0].ColorKey)
	assert.Equal(t, "#222222", ranked[1].ColorKey)
	assert.Equal(t, "#111111", ranked[2].ColorKey)
	assert.Equal(t, "#222222", ranked[3].ColorKey)
}

func TestRanker_NilSelectorDefaultsToTrailingTotal(t *testing.T) {
	r := NewRanker(nil)
	ranked := r.Rank(summariesFixture(), nil)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "CCC", ranked[0].Ticker)
}
