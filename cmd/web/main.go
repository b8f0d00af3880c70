package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"divicli/internal/config"
	"divicli/internal/dataprocessing"
	"divicli/internal/infrastructure"
	"divicli/internal/services"
	transport "divicli/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
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

	logger.Info("starting dividend analytics server",
		slog.Int("port", cfg.Server.Port),
		slog.String("version", transport.Version),
		slog.String("data_file", cfg.Paths.DataFile))

	service := services.NewDividendService(logger, cfg.Engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing data file is not fatal: the API can still serve
	// normalize and DRIP requests, and data can be loaded later.
	if _, err := os.Stat(cfg.Paths.DataFile); err == nil {
		loader := dataprocessing.NewLoader(logger)
		rows, err := loader.LoadFile(ctx, cfg.Paths.DataFile)
		if err != nil {
			return fmt.Errorf("load data file %s: %w", cfg.Paths.DataFile, err)
		}
		accepted, rejected := service.LoadRows(ctx, rows)
		logger.Info("dataset loaded",
			slog.Int("accepted", accepted),
			slog.Int("rejected", rejected))
	} else {
		logger.Warn("data file not found, starting with empty dataset",
			slog.String("path", cfg.Paths.DataFile))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      transport.NewRouter(cfg, service, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
