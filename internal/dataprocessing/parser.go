package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"divicli/internal/dividend"
)

// Column headers recognized in broker exports. Matching is case-insensitive
// after trimming.
const (
	columnTicker   = "ticker"
	columnDate     = "date"
	columnDividend = "net dividend"
)

// ParseTSV reads a tab-separated dividend export and returns raw rows for
// the Normalizer. The export carries amounts as "1.23 USD" and tax as "15%";
// those suffixes are stripped here so the engine sees plain numbers.
func ParseTSV(r io.Reader) ([]dividend.RawRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty export")
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]dividend.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rowFromCells(record, cols))
	}
	return rows, nil
}

// ParseExcel reads an XLSX dividend export. The sheet is located by its
// header row rather than by name, since broker exports name sheets
// inconsistently.
func ParseExcel(filePath string) ([]dividend.RawRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil || len(sheetRows) < 2 {
			continue
		}
		cols, err := mapColumns(sheetRows[0])
		if err != nil {
			continue
		}

		slog.Debug("found dividend sheet", slog.String("sheet", name))
		rows := make([]dividend.RawRow, 0, len(sheetRows)-1)
		for _, record := range sheetRows[1:] {
			rows = append(rows, rowFromCells(record, cols))
		}
		return rows, nil
	}

	return nil, fmt.Errorf("no sheet with dividend columns found in %s", filePath)
}

// columnIndex locates the ticker, date and dividend columns in a header row.
type columnIndex struct {
	ticker   int
	date     int
	dividend int
}

func mapColumns(header []string) (columnIndex, error) {
	cols := columnIndex{ticker: -1, date: -1, dividend: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case columnTicker:
			cols.ticker = i
		case columnDate:
			cols.date = i
		case columnDividend:
			cols.dividend = i
		}
	}
	if cols.ticker < 0 || cols.date < 0 || cols.dividend < 0 {
		return cols, fmt.Errorf("export is missing required columns (need %q, %q, %q)",
			columnTicker, columnDate, columnDividend)
	}
	return cols, nil
}

func rowFromCells(cells []string, cols columnIndex) dividend.RawRow {
	return dividend.RawRow{
		Ticker: cellAt(cells, cols.ticker),
		Date:   cellAt(cells, cols.date),
		Amount: cleanAmount(cellAt(cells, cols.dividend)),
	}
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// cleanAmount strips the currency suffix and percent sign the export appends
// to numeric cells.
func cleanAmount(raw string) string {
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	if idx := strings.IndexByte(raw, ' '); idx > 0 {
		raw = raw[:idx]
	}
	return raw
}
