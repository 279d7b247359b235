package ingest_usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/metrics"
	"flyer-ingest/port/flyer_source_port"
	"flyer-ingest/port/flyer_store_port"
	"flyer-ingest/port/job_status_port"
	"flyer-ingest/port/ocr_port"
	"flyer-ingest/port/product_image_port"
	"flyer-ingest/port/render_port"
	"flyer-ingest/port/tile_port"
	"flyer-ingest/port/upload_port"
	"flyer-ingest/utils/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

const tracerName = "flyer-ingest/ingest"

// Config tunes the orchestration loop.
type Config struct {
	GroceryChains    []string
	MaxConcurrentZip int
	InterFlyerDelay  time.Duration
}

// Dependencies are the ports the pipeline drives. ProductImages and JobStatus
// are optional.
type Dependencies struct {
	FlyerSource   flyer_source_port.FlyerSourcePort
	GridResolver  tile_port.GridResolverPort
	TileFetcher   tile_port.TileFetcherPort
	PageRenderer  render_port.PageRendererPort
	PageUploader  upload_port.PageUploaderPort
	DealExtractor ocr_port.DealExtractorPort
	ProductImages product_image_port.ProductImagePort
	FlyerStore    flyer_store_port.FlyerStorePort
	JobStatus     job_status_port.JobStatusPort
}

// IngestUsecase runs the flyer pipeline for postal codes. ZIP runs share one
// concurrency cap whether started through ProcessZipCode or ProcessZipCodes.
type IngestUsecase struct {
	deps   Dependencies
	config Config
	sem    *semaphore.Weighted
	tracer trace.Tracer
	logger *slog.Logger
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewIngestUsecase(deps Dependencies, config Config, logger *slog.Logger) *IngestUsecase {
	limit := config.MaxConcurrentZip
	if limit < 1 {
		limit = 1
	}

	return &IngestUsecase{
		deps:   deps,
		config: config,
		sem:    semaphore.NewWeighted(int64(limit)),
		tracer: otel.Tracer(tracerName),
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// ProcessZipCode ingests every grocery flyer currently published for zipCode.
// Per-flyer failures land in the summary's Errors; a returned error means the
// run as a whole could not complete (bad ZIP, metadata outage, cancellation).
func (u *IngestUsecase) ProcessZipCode(ctx context.Context, zipCode string) (*domain.JobSummary, error) {
	if err := u.sem.Acquire(ctx, 1); err != nil {
		return &domain.JobSummary{ZipCode: zipCode, Errors: []string{err.Error()}}, fmt.Errorf("wait for zip slot: %w", err)
	}
	defer u.sem.Release(1)

	return u.processZip(ctx, zipCode)
}

// ProcessZipCodes runs ProcessZipCode for each ZIP under the shared cap and
// returns summaries in input order. The error joins every failed run.
func (u *IngestUsecase) ProcessZipCodes(ctx context.Context, zipCodes []string) ([]*domain.JobSummary, error) {
	summaries := make([]*domain.JobSummary, len(zipCodes))
	errs := make([]error, len(zipCodes))

	var wg sync.WaitGroup
	for i, zip := range zipCodes {
		if err := u.sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(zipCodes); j++ {
				summaries[j] = &domain.JobSummary{ZipCode: zipCodes[j], Errors: []string{err.Error()}}
				errs[j] = fmt.Errorf("zip %s not started: %w", zipCodes[j], err)
			}
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer u.sem.Release(1)

			summaries[i], errs[i] = u.processZip(ctx, zip)
		}()
	}
	wg.Wait()

	return summaries, errors.Join(errs...)
}

func (u *IngestUsecase) processZip(ctx context.Context, rawZip string) (*domain.JobSummary, error) {
	start := u.now()
	summary := &domain.JobSummary{ZipCode: rawZip}

	zip, err := domain.SanitizeZipCode(rawZip)
	if err != nil {
		summary.Errors = append(summary.Errors, err.Error())
		metrics.RecordZipRun("invalid", 0)
		return summary, err
	}
	summary.ZipCode = zip

	ctx = logger.WithZipCode(ctx, zip)
	ctx, span := u.tracer.Start(ctx, "ingest.process_zip",
		trace.WithAttributes(attribute.String("zip_code", zip)))
	defer span.End()

	status := u.startJob(ctx, zip)
	if status != nil {
		ctx = logger.WithJobID(ctx, status.ID)
	}

	runErr := u.runZip(ctx, zip, summary)
	summary.Success = runErr == nil

	u.finishJob(ctx, status, summary, runErr)

	outcome := "succeeded"
	if runErr != nil {
		outcome = "failed"
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
	}
	span.SetAttributes(
		attribute.Int("flyers_found", summary.FlyersFound),
		attribute.Int("new_flyers", summary.NewFlyers),
		attribute.Int("total_deals", summary.TotalDeals),
	)
	metrics.RecordZipRun(outcome, time.Since(start).Seconds())

	u.logger.InfoContext(ctx, "zip ingestion finished",
		"success", summary.Success,
		"flyers_found", summary.FlyersFound,
		"flyers_processed", summary.FlyersProcessed,
		"new_flyers", summary.NewFlyers,
		"total_deals", summary.TotalDeals,
		"errors", len(summary.Errors),
		"duration", time.Since(start))

	if runErr != nil {
		return summary, fmt.Errorf("ingest zip %s: %w", zip, runErr)
	}
	return summary, nil
}

func (u *IngestUsecase) runZip(ctx context.Context, zip string, summary *domain.JobSummary) error {
	sources, err := u.deps.FlyerSource.FetchFlyers(ctx, zip)
	if err != nil {
		summary.Errors = append(summary.Errors, err.Error())
		metrics.RecordError("fetch_flyers", "metadata")
		return err
	}

	flyers := filterGrocery(sources, u.config.GroceryChains)
	summary.FlyersFound = len(flyers)
	u.logger.InfoContext(ctx, "fetched flyer listing",
		"listed", len(sources),
		"grocery", len(flyers))

	for i, src := range flyers {
		if i > 0 {
			if err := u.sleep(ctx, u.config.InterFlyerDelay); err != nil {
				summary.Errors = append(summary.Errors, err.Error())
				return err
			}
		}

		outcome, err := u.processFlyer(ctx, zip, src)
		if err != nil {
			u.logger.ErrorContext(ctx, "flyer failed",
				"flyer_run_id", src.FlyerRunID,
				"merchant", src.MerchantName,
				"error", err)
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s (%s): %v", src.FlyerRunID, src.MerchantName, err))
			metrics.RecordFlyer(outcomeFailed)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		summary.FlyersProcessed++
		summary.TotalDeals += outcome.deals
		if outcome.created {
			summary.NewFlyers++
		}
		metrics.RecordFlyer(outcome.label)
	}

	return nil
}

func (u *IngestUsecase) startJob(ctx context.Context, zip string) *domain.JobStatus {
	if u.deps.JobStatus == nil {
		return nil
	}

	status := domain.NewJobStatus(zip, u.now())
	status.State = domain.JobStateRunning
	if err := u.deps.JobStatus.Save(ctx, status); err != nil {
		u.logger.WarnContext(ctx, "failed to record job start", "error", err)
	}
	return status
}

func (u *IngestUsecase) finishJob(ctx context.Context, status *domain.JobStatus, summary *domain.JobSummary, runErr error) {
	if status == nil {
		return
	}

	status.Finish(summary, runErr, u.now())
	// The run context may already be cancelled; the final record is still wanted.
	if err := u.deps.JobStatus.Save(context.WithoutCancel(ctx), status); err != nil {
		u.logger.WarnContext(ctx, "failed to record job result", "error", err)
	}
}

func filterGrocery(sources []domain.FlyerSource, chains []string) []domain.FlyerSource {
	out := make([]domain.FlyerSource, 0, len(sources))
	for _, src := range sources {
		if domain.IsGroceryMerchant(src, chains) {
			out = append(out, src)
		}
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
