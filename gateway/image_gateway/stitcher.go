package image_gateway

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"flyer-ingest/domain"

	"golang.org/x/image/draw"
)

// Stitcher composes CDN tiles onto one canvas.
type Stitcher struct {
	logger *slog.Logger
}

func NewStitcher(logger *slog.Logger) *Stitcher {
	return &Stitcher{logger: logger}
}

// Stitch places each tile at (col*256, (rows-1-row)*256) on a white canvas.
// CDN row 0 is the visual bottom. Tiles that fail to decode, or fall outside
// the grid, leave their cell white.
func (s *Stitcher) Stitch(ctx context.Context, cols, rows int, tiles []domain.TileImage) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, cols*domain.TileSize, rows*domain.TileSize))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	for _, tile := range tiles {
		if tile.Ref.Col < 0 || tile.Ref.Col >= cols || tile.Ref.Row < 0 || tile.Ref.Row >= rows {
			continue
		}

		img, _, err := image.Decode(bytes.NewReader(tile.Data))
		if err != nil {
			s.logger.WarnContext(ctx, "skipping undecodable tile",
				"col", tile.Ref.Col,
				"row", tile.Ref.Row,
				"error", err)
			continue
		}

		origin := TileOrigin(rows, tile.Ref)
		dst := image.Rect(origin.X, origin.Y, origin.X+domain.TileSize, origin.Y+domain.TileSize)
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Src)
	}
	return canvas
}

// TileOrigin returns the top-left canvas pixel of a tile.
func TileOrigin(rows int, ref domain.TileRef) image.Point {
	return image.Point{
		X: ref.Col * domain.TileSize,
		Y: (rows - 1 - ref.Row) * domain.TileSize,
	}
}
