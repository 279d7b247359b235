package tile_gateway

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"flyer-ingest/domain"
	"flyer-ingest/metrics"

	"golang.org/x/sync/errgroup"
)

// BatchFetcherConfig controls tile download pacing.
type BatchFetcherConfig struct {
	BaseURL       string
	FetchTimeout  time.Duration
	BatchDelayMin time.Duration
	BatchDelayMax time.Duration
}

// BatchFetcher downloads the tiles of a render plan one batch at a time.
// Only one batch of raw tile bytes is in flight at once.
type BatchFetcher struct {
	client *tileClient
	config BatchFetcherConfig
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewBatchFetcher(httpClient *http.Client, config BatchFetcherConfig, logger *slog.Logger) *BatchFetcher {
	return &BatchFetcher{
		client: &tileClient{httpClient: httpClient, baseURL: config.BaseURL},
		config: config,
		logger: logger,
		sleep:  sleepContext,
	}
}

// TileURL returns the CDN URL of a tile.
func (f *BatchFetcher) TileURL(flyerPath string, ref domain.TileRef) string {
	return f.client.url(flyerPath, ref)
}

// FetchTiles downloads every tile of plan's grid. Failed tiles are reported,
// never returned as an error.
func (f *BatchFetcher) FetchTiles(ctx context.Context, flyerPath string, plan domain.RenderPlan) domain.TileFetchReport {
	refs := enumerate(plan)
	batchSize := plan.BatchSize
	if batchSize <= 0 {
		batchSize = len(refs)
	}

	var report domain.TileFetchReport
	for start := 0; start < len(refs); start += batchSize {
		if start > 0 {
			if err := f.sleep(ctx, f.batchDelay()); err != nil {
				f.logger.WarnContext(ctx, "tile fetch interrupted",
					"flyer_path", flyerPath,
					"fetched", len(report.Tiles),
					"remaining", len(refs)-start)
				break
			}
		}

		end := min(start+batchSize, len(refs))
		f.fetchBatch(ctx, flyerPath, refs[start:end], &report)
	}

	if len(report.Failures) > 0 {
		f.logger.WarnContext(ctx, "some tiles could not be fetched",
			"flyer_path", flyerPath,
			"zoom", plan.Zoom,
			"fetched", len(report.Tiles),
			"failed", len(report.Failures))
	}
	return report
}

func (f *BatchFetcher) fetchBatch(ctx context.Context, flyerPath string, batch []domain.TileRef, report *domain.TileFetchReport) {
	type outcome struct {
		data []byte
		err  error
	}
	outcomes := make([]outcome, len(batch))

	var g errgroup.Group
	for i, ref := range batch {
		g.Go(func() error {
			data, err := f.client.get(ctx, f.client.url(flyerPath, ref), f.config.FetchTimeout)
			outcomes[i] = outcome{data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, o := range outcomes {
		if o.err != nil {
			metrics.RecordTileFetch("failed")
			f.logger.DebugContext(ctx, "tile fetch failed",
				"flyer_path", flyerPath,
				"col", batch[i].Col,
				"row", batch[i].Row,
				"error", o.err)
			report.Failures = append(report.Failures, domain.TileFetchError{Ref: batch[i], Err: o.err})
			continue
		}
		metrics.RecordTileFetch("success")
		report.Tiles = append(report.Tiles, domain.TileImage{Ref: batch[i], Data: o.data})
	}
}

func (f *BatchFetcher) batchDelay() time.Duration {
	spread := f.config.BatchDelayMax - f.config.BatchDelayMin
	if spread <= 0 {
		return f.config.BatchDelayMin
	}
	return f.config.BatchDelayMin + rand.N(spread+1)
}

// enumerate lists the plan's tiles row-major.
func enumerate(plan domain.RenderPlan) []domain.TileRef {
	if plan.Cols < 1 || plan.Rows < 1 {
		return nil
	}
	refs := make([]domain.TileRef, 0, plan.Cols*plan.Rows)
	for row := 0; row < plan.Rows; row++ {
		for col := 0; col < plan.Cols; col++ {
			refs = append(refs, domain.TileRef{Zoom: plan.Zoom, Col: col, Row: row})
		}
	}
	return refs
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
