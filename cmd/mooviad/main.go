package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/common"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/export"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/extract"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/parse"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/pipeline"
	"github.com/bujtasszilviazsuzsanna-rgb/moovia-unilog-app/internal/server"
)

func main() {
	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Config
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pipeline wiring
	extractor := extract.NewPDFExtractor(extract.Config{Preflight: true}, logger)
	parser := parse.NewItemParser(cfg.Parser.QuantityWindow)
	proc := pipeline.NewProcessor(extractor, parser, export.NewService(logger), logger)

	// Any wiring gap (e.g. a missing extractor) is fatal before serving.
	srv, err := server.New(proc, cfg.Server.MaxUploadBytes, logger)
	if err != nil {
		logger.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()
	logger.Info("http serving", "addr", cfg.Server.Addr, "quantity_window", cfg.Parser.QuantityWindow)

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
