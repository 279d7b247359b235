package ingest_usecase

import (
	"context"
	"errors"
	"fmt"

	"flyer-ingest/domain"
	"flyer-ingest/metrics"
	"flyer-ingest/utils/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	outcomeCreated      = "created"
	outcomeExisting     = "existing"
	outcomeZipCorrected = "zip_corrected"
	outcomeSkipped      = "skipped"
	outcomeFailed       = "failed"
)

type flyerOutcome struct {
	label   string
	created bool
	deals   int
}

func (u *IngestUsecase) processFlyer(ctx context.Context, zip string, src domain.FlyerSource) (flyerOutcome, error) {
	ctx = logger.WithFlyerRunID(ctx, src.FlyerRunID)
	ctx, span := u.tracer.Start(ctx, "ingest.process_flyer",
		trace.WithAttributes(
			attribute.String("flyer_run_id", src.FlyerRunID),
			attribute.String("merchant", src.MerchantName),
		))
	defer span.End()

	exists, err := u.deps.FlyerStore.FlyerExists(ctx, src.FlyerRunID)
	if err != nil {
		span.RecordError(err)
		return flyerOutcome{}, fmt.Errorf("check existing flyer: %w", err)
	}
	if exists {
		return u.revisitFlyer(ctx, zip, src)
	}

	grid, err := u.deps.GridResolver.Resolve(ctx, src.FlyerPath, src.Width, src.Height)
	if err != nil {
		span.RecordError(err)
		return flyerOutcome{}, fmt.Errorf("resolve tile grid: %w", err)
	}
	if grid.IsEmpty() {
		u.logger.WarnContext(ctx, "flyer has no renderable tiles, skipping",
			"flyer_path", src.FlyerPath)
		return flyerOutcome{label: outcomeSkipped}, nil
	}

	plan := domain.SelectRenderPlan(grid)
	metrics.RecordQualityTier(plan.Tier.String())
	span.SetAttributes(
		attribute.String("quality_tier", plan.Tier.String()),
		attribute.Int("native_tiles", grid.TotalTiles()),
	)
	u.logger.InfoContext(ctx, "selected quality tier",
		"tier", plan.Tier.String(),
		"cols", grid.Cols,
		"rows", grid.Rows,
		"native_tiles", grid.TotalTiles())

	pages, err := u.preparePages(ctx, src.FlyerPath, grid, plan)
	if err != nil {
		span.RecordError(err)
		return flyerOutcome{}, err
	}

	imageURLs := u.uploadPages(ctx, src.FlyerRunID, pages)
	deals := u.extractDeals(ctx, imageURLs)
	if len(deals) > 0 && u.deps.ProductImages != nil {
		enriched := u.deps.ProductImages.Enrich(ctx, deals)
		u.logger.DebugContext(ctx, "enriched deals", "deals", len(deals), "with_image", enriched)
	}

	flyer := domain.NewFlyer(src, zip, imageURLs, u.now())
	result, err := u.deps.FlyerStore.PersistFlyer(ctx, flyer, deals)
	if err != nil {
		span.RecordError(err)
		metrics.RecordError("persist_flyer", "database")
		return flyerOutcome{}, fmt.Errorf("persist flyer: %w", err)
	}
	if !result.Created {
		u.logger.InfoContext(ctx, "flyer stored by a concurrent run")
		return flyerOutcome{label: outcomeExisting}, nil
	}

	return flyerOutcome{label: outcomeCreated, created: true, deals: result.DealsInserted}, nil
}

// revisitFlyer sends an already stored flyer through the persister so only its
// ZIP can change. Pages are not rendered again.
func (u *IngestUsecase) revisitFlyer(ctx context.Context, zip string, src domain.FlyerSource) (flyerOutcome, error) {
	result, err := u.deps.FlyerStore.PersistFlyer(ctx, domain.NewFlyer(src, zip, nil, u.now()), nil)
	if err != nil {
		metrics.RecordError("persist_flyer", "database")
		return flyerOutcome{}, fmt.Errorf("revisit existing flyer: %w", err)
	}

	if result.ZipCorrected {
		return flyerOutcome{label: outcomeZipCorrected}, nil
	}
	u.logger.DebugContext(ctx, "flyer already ingested")
	return flyerOutcome{label: outcomeExisting}, nil
}

// preparePages dispatches on the render plan: stitched tiers fetch, compose
// and split tiles; LowMemory hands zoom 0 tiles over as finished pages.
func (u *IngestUsecase) preparePages(ctx context.Context, flyerPath string, grid domain.TileGrid, plan domain.RenderPlan) ([]domain.PageUpload, error) {
	if !plan.Stitched() {
		return u.overviewPages(ctx, flyerPath, plan)
	}

	report := u.deps.TileFetcher.FetchTiles(ctx, flyerPath, plan)
	if len(report.Failures) > 0 {
		u.logger.WarnContext(ctx, "some tiles could not be fetched",
			"fetched", len(report.Tiles),
			"failed", len(report.Failures))
	}
	if len(report.Tiles) == 0 {
		return nil, fmt.Errorf("%w: %d of %d tiles failed", domain.ErrNoTilesFetched, len(report.Failures), plan.Cols*plan.Rows)
	}

	rendered, err := u.deps.PageRenderer.RenderPages(ctx, plan.Cols, plan.Rows, report.Tiles)
	if err != nil {
		return nil, fmt.Errorf("render pages: %w", err)
	}

	overview := u.fallbackGrid(ctx, flyerPath, grid, len(rendered))
	pages := make([]domain.PageUpload, 0, len(rendered))
	for _, page := range rendered {
		upload := domain.PageUpload{Index: page.Index, Data: page.Data}
		if ref, ok := domain.OverviewPageRef(overview, page.Index); ok {
			upload.FallbackURL = u.deps.TileFetcher.TileURL(flyerPath, ref)
		}
		pages = append(pages, upload)
	}
	return pages, nil
}

// fallbackGrid returns the zoom 0 grid whose tiles stand in for stitched
// pages that cannot be hosted. A probed grid already is that grid; declared
// dimensions need one overview probe. If probing fails the tiles are assumed
// to form a single row.
func (u *IngestUsecase) fallbackGrid(ctx context.Context, flyerPath string, grid domain.TileGrid, pages int) domain.TileGrid {
	if grid.Zoom == domain.OverviewZoom && !grid.IsEmpty() {
		return grid
	}

	overview, err := u.deps.GridResolver.ResolveOverview(ctx, flyerPath)
	if err != nil || overview.IsEmpty() {
		u.logger.DebugContext(ctx, "overview grid unavailable, assuming one row of fallback tiles",
			"error", err)
		return domain.TileGrid{Cols: pages, Rows: 1, Zoom: domain.OverviewZoom}
	}
	return overview
}

func (u *IngestUsecase) overviewPages(ctx context.Context, flyerPath string, plan domain.RenderPlan) ([]domain.PageUpload, error) {
	overview, err := u.deps.GridResolver.ResolveOverview(ctx, flyerPath)
	if err != nil {
		return nil, fmt.Errorf("resolve overview grid: %w", err)
	}

	refs := domain.OverviewPages(overview, plan.MaxPages)
	if len(refs) == 0 {
		return nil, domain.ErrNoRenderableContent
	}

	pages := make([]domain.PageUpload, len(refs))
	for i, ref := range refs {
		tileURL := u.deps.TileFetcher.TileURL(flyerPath, ref)
		pages[i] = domain.PageUpload{
			Index:       i,
			SourceURL:   tileURL,
			FallbackURL: tileURL,
		}
	}
	return pages, nil
}

func (u *IngestUsecase) uploadPages(ctx context.Context, flyerRunID string, pages []domain.PageUpload) []string {
	urls := make([]string, 0, len(pages))
	hosted := 0
	for _, page := range pages {
		result := u.deps.PageUploader.UploadPage(ctx, flyerRunID, page)
		if result.URL == "" {
			continue
		}
		if result.Hosted {
			hosted++
		}
		urls = append(urls, result.URL)
	}

	u.logger.InfoContext(ctx, "uploaded flyer pages",
		"pages", len(pages),
		"hosted", hosted,
		"fallback", len(urls)-hosted)
	return urls
}

// extractDeals runs OCR page by page. A page that fails or cannot be decoded
// contributes zero deals.
func (u *IngestUsecase) extractDeals(ctx context.Context, pageURLs []string) []domain.Deal {
	var deals []domain.Deal
	for i, pageURL := range pageURLs {
		pageDeals, err := u.deps.DealExtractor.ExtractDeals(ctx, pageURL)
		if err != nil {
			var decodeErr *domain.DecodeError
			if errors.As(err, &decodeErr) {
				u.logger.WarnContext(ctx, "model output had no deal array",
					"page", i,
					"reason", decodeErr.Reason)
			} else {
				u.logger.ErrorContext(ctx, "deal extraction failed",
					"page", i,
					"error", err)
			}
			continue
		}
		deals = append(deals, pageDeals...)
	}
	return deals
}
