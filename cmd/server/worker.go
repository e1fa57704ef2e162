package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/StrideHQ/stride-web/internal/db"
	"github.com/StrideHQ/stride-web/internal/logger"
	"github.com/StrideHQ/stride-web/internal/storage"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var workerTracer = otel.Tracer("stride/worker")

// WorkerConfig holds configuration for the export share sweeper.
type WorkerConfig struct {
	PollInterval time.Duration
	MaxShares    int  // Maximum expired shares to collect per cycle
	DryRun       bool // If true, log what would be deleted without deleting
}

// Worker removes expired export shares and their stored artifacts.
type Worker struct {
	db     *db.DB
	store  *storage.S3Storage
	config WorkerConfig
}

// runWorker is the entry point for the background worker process.
func runWorker() {
	logger.Info("starting export share sweeper")

	// Initialize OpenTelemetry (same as server)
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		logger.Warn("failed to configure OpenTelemetry for worker", "error", err)
	} else {
		defer otelShutdown()
	}

	workerConfig := loadWorkerConfig()
	logger.Info("worker configuration loaded",
		"poll_interval", workerConfig.PollInterval,
		"max_shares", workerConfig.MaxShares,
		"dry_run", workerConfig.DryRun,
	)

	if workerConfig.DryRun {
		logger.Info("DRY-RUN MODE ENABLED - no shares will be deleted")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("missing required env var", "var", "DATABASE_URL")
	}

	database, err := db.Connect(databaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close()

	store, err := storage.NewS3Storage(loadS3Config())
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	worker := &Worker{
		db:     database,
		store:  store,
		config: workerConfig,
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutdown signal received, stopping worker")
		cancel()
	}()

	worker.Run(ctx)
	logger.Info("worker stopped")
}

func loadWorkerConfig() WorkerConfig {
	pollInterval := 15 * time.Minute
	if v := os.Getenv("SWEEP_POLL_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			pollInterval = parsed
		}
	}

	maxShares := 100
	if v := os.Getenv("SWEEP_MAX_SHARES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxShares = parsed
		}
	}

	return WorkerConfig{
		PollInterval: pollInterval,
		MaxShares:    maxShares,
		DryRun:       os.Getenv("SWEEP_DRY_RUN") == "true",
	}
}

// Run executes the main worker loop.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Run immediately on startup
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce executes a single sweep cycle. The artifact is deleted before
// the row so a failed object deletion is retried on the next cycle.
func (w *Worker) runOnce(ctx context.Context) {
	ctx, span := workerTracer.Start(ctx, "worker.sweep_expired_shares")
	defer span.End()

	now := time.Now().UTC()
	expired, err := w.db.ListExpiredShares(ctx, now, w.config.MaxShares)
	if err != nil {
		logger.Error("failed to list expired shares", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(attribute.Int("shares.expired.found", len(expired)))
	if len(expired) == 0 {
		return
	}

	logger.Info("found expired shares", "count", len(expired))

	if w.config.DryRun {
		for _, share := range expired {
			logger.Info("[DRY-RUN] would delete expired share",
				"token", share.Token,
				"object_key", share.ObjectKey,
				"expired_at", share.ExpiresAt,
			)
		}
		span.SetAttributes(attribute.Bool("dry_run", true))
		return
	}

	deleted, errs := 0, 0
	for _, share := range expired {
		if ctx.Err() != nil {
			return
		}

		if err := w.store.Delete(ctx, share.ObjectKey); err != nil {
			logger.Error("failed to delete share artifact",
				"error", err, "token", share.Token, "object_key", share.ObjectKey)
			errs++
			continue
		}

		if err := w.db.DeleteExportShare(ctx, share.Token); err != nil && err != db.ErrShareNotFound {
			logger.Error("failed to delete share row", "error", err, "token", share.Token)
			errs++
			continue
		}
		deleted++
	}

	logger.Info("sweep cycle complete", "deleted", deleted, "errors", errs)
	span.SetAttributes(
		attribute.Int("shares.deleted", deleted),
		attribute.Int("shares.errors", errs),
	)
}
