// Package dataprocessing reads broker dividend exports into raw rows for the
// dividend engine. It understands the tab-separated CSV export (with "1.23
// USD" amount cells and "15%" tax cells) and the equivalent XLSX workbook.
// All cleaning here is purely lexical; semantic validation is the engine
// Normalizer's job.
package dataprocessing
