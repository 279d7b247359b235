//go:generate go run go.uber.org/mock/mockgen -source=tile_port.go -destination=../../mocks/mock_tile_port.go -package=mocks

package tile_port

import (
	"context"
	"flyer-ingest/domain"
)

// GridResolverPort determines the tile grid of a flyer.
type GridResolverPort interface {
	// Resolve returns the native-zoom grid, from declared dimensions when present.
	Resolve(ctx context.Context, flyerPath string, width, height int) (domain.TileGrid, error)
	// ResolveOverview probes the zoom 0 grid used for page-only rendering.
	ResolveOverview(ctx context.Context, flyerPath string) (domain.TileGrid, error)
}

// TileFetcherPort downloads tiles and builds their CDN URLs.
type TileFetcherPort interface {
	FetchTiles(ctx context.Context, flyerPath string, plan domain.RenderPlan) domain.TileFetchReport
	TileURL(flyerPath string, ref domain.TileRef) string
}
