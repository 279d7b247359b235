package image_gateway

import (
	"context"
	"log/slog"

	"flyer-ingest/domain"
)

// Renderer turns fetched tiles into encoded pages.
type Renderer struct {
	stitcher *Stitcher
	splitter *Splitter
	logger   *slog.Logger
}

func NewRenderer(stitcher *Stitcher, splitter *Splitter, logger *slog.Logger) *Renderer {
	return &Renderer{
		stitcher: stitcher,
		splitter: splitter,
		logger:   logger,
	}
}

func (r *Renderer) RenderPages(ctx context.Context, cols, rows int, tiles []domain.TileImage) ([]domain.PageImage, error) {
	if len(tiles) == 0 {
		return nil, domain.ErrNoTilesFetched
	}

	composite := r.stitcher.Stitch(ctx, cols, rows, tiles)
	pages, err := r.splitter.Split(composite)
	if err != nil {
		return nil, err
	}

	b := composite.Bounds()
	r.logger.InfoContext(ctx, "rendered flyer pages",
		"width", b.Dx(),
		"height", b.Dy(),
		"tiles", len(tiles),
		"pages", len(pages))
	return pages, nil
}
