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

	httpadapter "github.com/couchcryptid/air-quality-forecast/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/air-quality-forecast/internal/adapter/kafka"
	"github.com/couchcryptid/air-quality-forecast/internal/adapter/memstore"
	"github.com/couchcryptid/air-quality-forecast/internal/adapter/textreport"
	"github.com/couchcryptid/air-quality-forecast/internal/config"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/couchcryptid/air-quality-forecast/internal/observability"
	"github.com/couchcryptid/air-quality-forecast/internal/pipeline"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	seed := cfg.HistorySeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	limits := domain.DefaultLimits()
	assessor := domain.NewAssessor(limits, domain.DefaultSeasonalFactors(), domain.NewSeededHistoryGenerator(seed))
	logger.Info("assessor ready", "history_seed", seed, "input_policy", cfg.InputPolicy)

	store := memstore.New(cfg.ZoneCacheSize, metrics.ZoneCache)
	// Zones evicted from the cache stop being exported as alert tier series.
	store.OnEvict(func(zone string) {
		metrics.ZoneAlertTier.DeleteLabelValues(zone)
	})

	// Report export is feature-flagged via REPORT_DIR.
	var exporter pipeline.ReportExporter
	if cfg.ReportDir != "" {
		exporter = textreport.NewExporter(cfg.ReportDir)
		logger.Info("report export enabled", "dir", cfg.ReportDir)
	} else {
		logger.Info("report export disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(assessor, domain.DefaultInputRanges(), cfg.InputPolicy == config.InputPolicyClamp, logger)
	reporter := pipeline.NewReporter(limits, store, exporter, logger, metrics)

	p := pipeline.New(reader, transformer, writer, reporter, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start forecast pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	// Scheduled report refresh (feature-flagged via REPORT_SCHEDULE).
	scheduler := cron.New()
	if cfg.ReportSchedule != "" {
		if _, err := scheduler.AddFunc(cfg.ReportSchedule, func() {
			if err := reporter.Refresh(ctx); err != nil {
				logger.Error("scheduled report refresh failed", "error", err)
			}
		}); err != nil {
			logger.Error("invalid report schedule", "schedule", cfg.ReportSchedule, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("report refresh scheduled", "schedule", cfg.ReportSchedule)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Error("scheduled report refresh still running at shutdown")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
