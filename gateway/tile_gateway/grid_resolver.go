package tile_gateway

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"flyer-ingest/domain"
)

// GridResolver works out how many tiles cover a flyer.
type GridResolver struct {
	client       *tileClient
	probeTimeout time.Duration
	logger       *slog.Logger
}

func NewGridResolver(httpClient *http.Client, baseURL string, probeTimeout time.Duration, logger *slog.Logger) *GridResolver {
	return &GridResolver{
		client:       &tileClient{httpClient: httpClient, baseURL: baseURL},
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

// Resolve returns the grid used for tier selection. Declared dimensions are
// authoritative; without them the zoom 0 grid is probed and its counts stand
// in for the native ones. Zoom records where the grid was measured. An empty
// grid means the flyer has nothing to render.
func (r *GridResolver) Resolve(ctx context.Context, flyerPath string, width, height int) (domain.TileGrid, error) {
	if width > 0 && height > 0 {
		return domain.GridFromDimensions(width, height), nil
	}

	probed, err := r.probe(ctx, flyerPath)
	if err != nil {
		return domain.TileGrid{}, err
	}

	r.logger.InfoContext(ctx, "resolved tile grid by probing",
		"flyer_path", flyerPath,
		"cols", probed.Cols,
		"rows", probed.Rows)
	return probed, nil
}

// ResolveOverview probes the zoom 0 grid whose tiles are served as pages.
func (r *GridResolver) ResolveOverview(ctx context.Context, flyerPath string) (domain.TileGrid, error) {
	return r.probe(ctx, flyerPath)
}

func (r *GridResolver) probe(ctx context.Context, flyerPath string) (domain.TileGrid, error) {
	cols := r.count(ctx, flyerPath, domain.MaxProbeColumns, func(i int) domain.TileRef {
		return domain.TileRef{Zoom: domain.OverviewZoom, Col: i, Row: 0}
	})
	if err := ctx.Err(); err != nil {
		return domain.TileGrid{}, err
	}
	if cols == 0 {
		return domain.TileGrid{Zoom: domain.OverviewZoom}, nil
	}

	rows := r.count(ctx, flyerPath, domain.MaxProbeRows, func(i int) domain.TileRef {
		return domain.TileRef{Zoom: domain.OverviewZoom, Col: 0, Row: i}
	})
	if err := ctx.Err(); err != nil {
		return domain.TileGrid{}, err
	}
	if rows == 0 {
		return domain.TileGrid{Zoom: domain.OverviewZoom}, nil
	}

	return domain.TileGrid{Cols: cols, Rows: rows, Zoom: domain.OverviewZoom}, nil
}

// count walks indices from 0 until the first miss or limit.
func (r *GridResolver) count(ctx context.Context, flyerPath string, limit int, ref func(int) domain.TileRef) int {
	n := 0
	for n < limit {
		if ctx.Err() != nil {
			return n
		}
		if !r.client.exists(ctx, r.client.url(flyerPath, ref(n)), r.probeTimeout) {
			break
		}
		n++
	}
	return n
}
