package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"flyer-ingest/config"
	"flyer-ingest/driver/flyer_db"
	"flyer-ingest/driver/job_status_store"
	"flyer-ingest/gateway/flyer_source_gateway"
	"flyer-ingest/gateway/image_gateway"
	"flyer-ingest/gateway/ocr_gateway"
	"flyer-ingest/gateway/product_image_gateway"
	"flyer-ingest/gateway/tile_gateway"
	"flyer-ingest/gateway/upload_gateway"
	"flyer-ingest/handler"
	"flyer-ingest/port/job_status_port"
	"flyer-ingest/port/product_image_port"
	"flyer-ingest/usecase/ingest_usecase"
	"flyer-ingest/utils/httpclient"
	"flyer-ingest/utils/rate_limiter"
	"flyer-ingest/utils/sanitizer"
	"flyer-ingest/utils/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Config        *config.Config
	Logger        *slog.Logger
	DBPool        *pgxpool.Pool
	FlyerRepo     *flyer_db.FlyerRepository
	JobStatus     job_status_port.JobStatusPort
	Ingest        *ingest_usecase.IngestUsecase
	HealthHandler *handler.HealthHandler
	JobHandler    *handler.JobHandler
}

// BuildDependencies connects to the database (and Redis when configured) and
// wires every gateway into the ingest usecase. The returned cleanup closes
// the connections.
func BuildDependencies(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Dependencies, func(), error) {
	dbPool, err := flyer_db.NewPool(ctx, cfg.Database.URL, flyer_db.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	cleanup := func() {
		dbPool.Close()
	}

	jobStatus, closeJobs, err := buildJobStatusStore(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cleanup = func() {
		closeJobs()
		dbPool.Close()
	}

	flyerRepo := flyer_db.NewFlyerRepository(dbPool, sanitizer.NewSanitizer(), log)

	ingest, err := buildIngestUsecase(cfg, flyerRepo, jobStatus, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &Dependencies{
		Config:        cfg,
		Logger:        log,
		DBPool:        dbPool,
		FlyerRepo:     flyerRepo,
		JobStatus:     jobStatus,
		Ingest:        ingest,
		HealthHandler: handler.NewHealthHandler(flyerRepo, log),
		JobHandler:    handler.NewJobHandler(jobStatus, log),
	}, cleanup, nil
}

func buildJobStatusStore(ctx context.Context, cfg *config.Config) (job_status_port.JobStatusPort, func(), error) {
	if cfg.JobStatus.Backend != "redis" {
		return job_status_store.NewMemoryStore(), func() {}, nil
	}

	client, err := job_status_store.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect job status redis: %w", err)
	}
	return job_status_store.NewRedisStore(client, cfg.JobStatus.TTL), func() { _ = client.Close() }, nil
}

func buildIngestUsecase(
	cfg *config.Config,
	store *flyer_db.FlyerRepository,
	jobStatus job_status_port.JobStatusPort,
	log *slog.Logger,
) (*ingest_usecase.IngestUsecase, error) {
	pool := httpclient.NewPool(httpclient.PoolConfig{
		UserAgent:           cfg.HTTP.UserAgent,
		MaxIdleConns:        cfg.HTTP.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.HTTP.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.HTTP.IdleConnTimeout,
	})

	tileClient := pool.NewPooledClient(cfg.Tiles.FetchTimeout)

	stitcher := image_gateway.NewStitcher(log)
	splitter := image_gateway.NewSplitter(cfg.Image.MaxPageDimension, cfg.Image.JPEGQuality)

	ocr := ocr_gateway.NewOCRGateway(
		pool.NewPooledClient(cfg.OCR.Timeout),
		ocr_gateway.Config{
			Host:      cfg.OCR.Host,
			APIPath:   cfg.OCR.APIPath,
			APIKey:    cfg.OCR.APIKey,
			Model:     cfg.OCR.Model,
			MaxTokens: cfg.OCR.MaxTokens,
			Timeout:   cfg.OCR.Timeout,
		},
		rate_limiter.NewHostRateLimiter(cfg.OCR.Interval),
		ocr_gateway.NewDealParser(validator.New()),
		log,
	)

	var productImages product_image_port.ProductImagePort
	if cfg.Enrich.Enabled {
		enricher, err := product_image_gateway.NewProductImageGateway(
			pool.NewPooledClient(cfg.Enrich.Timeout),
			product_image_gateway.Config{
				BaseURL:   cfg.Enrich.BaseURL,
				Timeout:   cfg.Enrich.Timeout,
				CacheSize: cfg.Enrich.CacheSize,
			},
			rate_limiter.NewHostRateLimiter(cfg.Enrich.Interval),
			log,
		)
		if err != nil {
			return nil, fmt.Errorf("build product image gateway: %w", err)
		}
		productImages = enricher
	}

	deps := ingest_usecase.Dependencies{
		FlyerSource: flyer_source_gateway.NewFlyerSourceGateway(
			pool.NewPooledClient(cfg.Metadata.Timeout), cfg.Metadata.BaseURL, cfg.Metadata.Locale, log),
		GridResolver: tile_gateway.NewGridResolver(tileClient, cfg.Tiles.BaseURL, cfg.Tiles.ProbeTimeout, log),
		TileFetcher: tile_gateway.NewBatchFetcher(tileClient, tile_gateway.BatchFetcherConfig{
			BaseURL:       cfg.Tiles.BaseURL,
			FetchTimeout:  cfg.Tiles.FetchTimeout,
			BatchDelayMin: cfg.Tiles.BatchDelayMin,
			BatchDelayMax: cfg.Tiles.BatchDelayMax,
		}, log),
		PageRenderer: image_gateway.NewRenderer(stitcher, splitter, log),
		PageUploader: upload_gateway.NewUploadGateway(pool.NewPooledClient(cfg.Upload.Timeout), upload_gateway.Config{
			Enabled:    cfg.Upload.Enabled,
			Endpoint:   cfg.Upload.Endpoint,
			APIKey:     cfg.Upload.APIKey,
			Preset:     cfg.Upload.Preset,
			Timeout:    cfg.Upload.Timeout,
			MaxRetries: cfg.Upload.MaxRetries,
			RetryDelay: cfg.Upload.RetryDelay,
		}, log),
		DealExtractor: ocr,
		ProductImages: productImages,
		FlyerStore:    store,
		JobStatus:     jobStatus,
	}

	return ingest_usecase.NewIngestUsecase(deps, ingest_usecase.Config{
		GroceryChains:    cfg.Ingest.GroceryChains,
		MaxConcurrentZip: cfg.Ingest.MaxConcurrentZip,
		InterFlyerDelay:  cfg.Ingest.InterFlyerDelay,
	}, log), nil
}
