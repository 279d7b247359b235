//go:generate go run go.uber.org/mock/mockgen -source=render_port.go -destination=../../mocks/mock_render_port.go -package=mocks

package render_port

import (
	"context"
	"flyer-ingest/domain"
)

// PageRendererPort stitches fetched tiles and cuts the composite into encoded pages.
type PageRendererPort interface {
	RenderPages(ctx context.Context, cols, rows int, tiles []domain.TileImage) ([]domain.PageImage, error)
}
