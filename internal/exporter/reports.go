package exporter

import (
	"sort"
	"strconv"

	"divicli/internal/dividend"
)

// WriteSummaries writes per-ticker summary statistics sorted by ticker.
// An undefined growth rate is written as an empty cell, never as zero.
func (w *CSVWriter) WriteSummaries(name string, summaries map[string]dividend.TickerSummary) error {
	tickers := make([]string, 0, len(summaries))
	for ticker := range summaries {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	records := make([][]string, 0, len(tickers))
	for _, ticker := range tickers {
		s := summaries[ticker]
		growth := ""
		if s.AvgGrowthRate != nil {
			growth = formatFloat(*s.AvgGrowthRate)
		}
		records = append(records, []string{
			s.Ticker,
			strconv.Itoa(s.RecordCount),
			formatFloat(s.LatestAmount),
			formatFloat(s.TrailingTotal),
			growth,
		})
	}

	return w.WriteCSV(name, WriteOptions{
		Headers:   []string{"Ticker", "RecordCount", "LatestAmount", "TrailingTotal", "AvgGrowthRate"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteProjection writes a projection series, one row per projected year.
func (w *CSVWriter) WriteProjection(name string, series dividend.ProjectionSeries) error {
	records := make([][]string, 0, len(series.Values))
	for _, point := range series.Values {
		records = append(records, []string{
			series.Ticker,
			strconv.Itoa(point.YearOffset),
			formatFloat(point.Amount),
		})
	}

	return w.WriteCSV(name, WriteOptions{
		Headers:   []string{"Ticker", "YearOffset", "ProjectedAmount"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteRankings writes the ranked ticker list in rank order.
func (w *CSVWriter) WriteRankings(name string, ranked []dividend.RankedTicker) error {
	records := make([][]string, 0, len(ranked))
	for _, rt := range ranked {
		records = append(records, []string{
			strconv.Itoa(rt.Rank),
			rt.Ticker,
			rt.ColorKey,
		})
	}

	return w.WriteCSV(name, WriteOptions{
		Headers:   []string{"Rank", "Ticker", "ColorKey"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteRejected writes rejected rows with their reason codes so no input row
// disappears silently.
func (w *CSVWriter) WriteRejected(name string, rejected []dividend.RejectedRow) error {
	records := make([][]string, 0, len(rejected))
	for _, rr := range rejected {
		records = append(records, []string{
			rr.Row.Ticker,
			rr.Row.Date,
			rr.Row.Amount,
			string(rr.Reason),
		})
	}

	return w.WriteCSV(name, WriteOptions{
		Headers:   []string{"Ticker", "Date", "Amount", "Reason"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteDRIP writes a dividend reinvestment simulation, one row per year.
func (w *CSVWriter) WriteDRIP(name string, ticker string, years []dividend.DRIPYear) error {
	records := make([][]string, 0, len(years))
	for _, y := range years {
		records = append(records, []string{
			ticker,
			strconv.Itoa(y.YearOffset),
			formatFloat(y.Shares),
			formatFloat(y.SharePrice),
			formatFloat(y.DividendIncome),
			formatFloat(y.PortfolioValue),
			formatFloat(y.DRIPBenefit),
		})
	}

	return w.WriteCSV(name, WriteOptions{
		Headers:   []string{"Ticker", "YearOffset", "Shares", "SharePrice", "DividendIncome", "PortfolioValue", "DRIPBenefit"},
		Records:   records,
		BOMPrefix: true,
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
