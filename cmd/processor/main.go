package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"divicli/internal/config"
	"divicli/internal/dataprocessing"
	"divicli/internal/dividend"
	"divicli/internal/exporter"
	"divicli/internal/infrastructure"
	"divicli/internal/services"
)

func main() {
	inPath := flag.String("in", "", "input file or directory of dividend exports (defaults to the configured data file)")
	outDir := flag.String("out", "", "output directory for CSV reports (defaults to the configured reports dir)")
	metric := flag.String("metric", services.MetricTrailingTotal, "ranking metric: trailing_total, latest_amount or record_count")
	projectAll := flag.Bool("project", false, "also write a projection report per ticker using configured defaults")
	flag.Parse()

	if err := run(*inPath, *outDir, *metric, *projectAll); err != nil {
		slog.Error("processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(inPath, outDir, metric string, projectAll bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	if inPath == "" {
		inPath = cfg.Paths.DataFile
	}
	if outDir == "" {
		outDir = cfg.Paths.ReportsDir
	}

	logger.Info("starting dividend report processing",
		slog.String("input", inPath),
		slog.String("output_dir", outDir))

	ctx := context.Background()
	loader := dataprocessing.NewLoader(logger)

	info, err := os.Stat(inPath)
	if err != nil {
		return fmt.Errorf("stat input %s: %w", inPath, err)
	}

	var rows []dividend.RawRow
	if info.IsDir() {
		rows, err = loader.LoadDir(ctx, inPath)
	} else {
		rows, err = loader.LoadFile(ctx, inPath)
	}
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}

	service := services.NewDividendService(logger, cfg.Engine)
	accepted, rejected := service.LoadRows(ctx, rows)
	logger.Info("dataset normalized",
		slog.Int("accepted", accepted),
		slog.Int("rejected", rejected))

	writer := exporter.NewCSVWriter(outDir, logger)

	summaries := service.Summaries(ctx)
	if err := writer.WriteSummaries("summaries.csv", summaries); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	if err := writer.WriteRejected("rejected.csv", service.Rejected(ctx)); err != nil {
		return fmt.Errorf("write rejected: %w", err)
	}

	ranking, err := service.Ranking(ctx, metric)
	if err != nil {
		return fmt.Errorf("rank tickers: %w", err)
	}
	if err := writer.WriteRankings("rankings.csv", ranking); err != nil {
		return fmt.Errorf("write rankings: %w", err)
	}

	if projectAll {
		tickers := make([]string, 0, len(summaries))
		for ticker := range summaries {
			tickers = append(tickers, ticker)
		}
		sort.Strings(tickers)

		for _, ticker := range tickers {
			series, err := service.Projection(ctx, ticker, nil, nil)
			if err != nil {
				logger.Warn("skipping projection",
					slog.String("ticker", ticker),
					slog.String("error", err.Error()))
				continue
			}
			name := fmt.Sprintf("projection_%s.csv", ticker)
			if err := writer.WriteProjection(name, series); err != nil {
				return fmt.Errorf("write projection for %s: %w", ticker, err)
			}
		}
	}

	logger.Info("processing complete",
		slog.Int("tickers", len(summaries)),
		slog.String("output_dir", outDir))
	return nil
}
