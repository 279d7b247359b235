package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flyer-ingest/config"
	"flyer-ingest/job"
	"flyer-ingest/utils/logger"
	"flyer-ingest/utils/otel"
)

// Observability is the process-wide logger plus the telemetry shutdown hook.
type Observability struct {
	Logger      *slog.Logger
	OTelEnabled bool
	ServiceName string
	shutdown    otel.ShutdownFunc
}

// InitObservability starts the OTel providers and builds the logger. A
// failing exporter setup disables OTel instead of aborting.
func InitObservability(ctx context.Context) *Observability {
	otelCfg := otel.ConfigFromEnv()
	shutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		shutdown = func(context.Context) error { return nil }
	}

	log := logger.Init(logger.LoadConfigFromEnv(), otelCfg.Enabled)

	return &Observability{
		Logger:      log,
		OTelEnabled: otelCfg.Enabled,
		ServiceName: otelCfg.ServiceName,
		shutdown:    shutdown,
	}
}

// Close flushes telemetry exporters.
func (o *Observability) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.shutdown(ctx); err != nil {
		o.Logger.Error("Failed to shutdown OpenTelemetry", "error", err)
	}
}

// Serve runs the scheduler and HTTP server until SIGINT or SIGTERM.
func Serve(ctx context.Context, cfg *config.Config, obs *Observability) error {
	log := obs.Logger

	deps, cleanup, err := BuildDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := NewHTTPServer(deps, obs.OTelEnabled, obs.ServiceName)
	StartHTTPServer(httpServer, cfg.Server.Port, log)

	scheduler := job.NewJobScheduler(log)
	scheduler.Add(job.Job{
		Name:     "zip-ingest",
		Interval: cfg.Ingest.Interval,
		Timeout:  cfg.Ingest.JobTimeout,
		Fn:       job.ZipIngestJob(deps.Ingest, cfg.Ingest.ZipCodes, log),
	})
	scheduler.Start(ctx)

	log.Info("flyer-ingest service started",
		"zip_codes", len(cfg.Ingest.ZipCodes),
		"interval", cfg.Ingest.Interval,
		"job_status_backend", cfg.JobStatus.Backend)

	<-ctx.Done()
	log.Info("Shutting down flyer-ingest service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down HTTP server", "error", err)
	}

	scheduler.Shutdown()
	log.Info("flyer-ingest service stopped")
	return nil
}
