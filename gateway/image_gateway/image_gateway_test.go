package image_gateway

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"flyer-ingest/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func solidTile(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, domain.TileSize, domain.TileSize))
	for y := 0; y < domain.TileSize; y++ {
		for x := 0; x < domain.TileSize; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func assertRGBA(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	assert.Equal(t, want, img.RGBAAt(x, y), "pixel (%d,%d)", x, y)
}

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestStitcher_InvertsRows(t *testing.T) {
	stitcher := NewStitcher(testLogger())
	tiles := []domain.TileImage{
		{Ref: domain.TileRef{Zoom: 5, Col: 0, Row: 0}, Data: solidTile(t, red)},
		{Ref: domain.TileRef{Zoom: 5, Col: 1, Row: 1}, Data: solidTile(t, blue)},
	}

	canvas := stitcher.Stitch(context.Background(), 2, 2, tiles)

	require.Equal(t, image.Rect(0, 0, 512, 512), canvas.Bounds())
	// (col=0,row=0) is the visual bottom-left cell.
	assertRGBA(t, canvas, 0, 256, red)
	assertRGBA(t, canvas, 255, 511, red)
	// (col=1,row=1) is the visual top-right cell.
	assertRGBA(t, canvas, 256, 0, blue)
	// Missing tiles stay white.
	assertRGBA(t, canvas, 0, 0, white)
	assertRGBA(t, canvas, 300, 300, white)
}

func TestStitcher_SkipsBadTiles(t *testing.T) {
	stitcher := NewStitcher(testLogger())
	tiles := []domain.TileImage{
		{Ref: domain.TileRef{Col: 0, Row: 0}, Data: []byte("not an image")},
		{Ref: domain.TileRef{Col: 5, Row: 0}, Data: solidTile(t, red)},
	}

	canvas := stitcher.Stitch(context.Background(), 1, 1, tiles)

	assertRGBA(t, canvas, 10, 10, white)
}

func TestTileOrigin(t *testing.T) {
	assert.Equal(t, image.Pt(0, 4*256), TileOrigin(5, domain.TileRef{Col: 0, Row: 0}))
	assert.Equal(t, image.Pt(3*256, 0), TileOrigin(5, domain.TileRef{Col: 3, Row: 4}))
}

func TestPageBounds(t *testing.T) {
	tests := map[string]struct {
		bounds image.Rectangle
		want   []image.Rectangle
	}{
		"portrait is one page": {
			bounds: image.Rect(0, 0, 1024, 1536),
			want:   []image.Rectangle{image.Rect(0, 0, 1024, 1536)},
		},
		"exactly twice as wide is one page": {
			bounds: image.Rect(0, 0, 1200, 600),
			want:   []image.Rectangle{image.Rect(0, 0, 1200, 600)},
		},
		"wide strip is cut into portrait pages": {
			bounds: image.Rect(0, 0, 2000, 600),
			want: []image.Rectangle{
				image.Rect(0, 0, 450, 600),
				image.Rect(450, 0, 900, 600),
				image.Rect(900, 0, 1350, 600),
				image.Rect(1350, 0, 1800, 600),
				image.Rect(1800, 0, 2000, 600),
			},
		},
		"empty": {
			bounds: image.Rectangle{},
			want:   nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageBounds(tc.bounds))
		})
	}
}

func TestSplitter_Split(t *testing.T) {
	splitter := NewSplitter(4096, 85)
	img := image.NewRGBA(image.Rect(0, 0, 2000, 600))

	pages, err := splitter.Split(img)

	require.NoError(t, err)
	require.Len(t, pages, 5)
	for i, page := range pages {
		assert.Equal(t, i, page.Index)
		assert.Equal(t, 600, page.Height)

		decoded, err := jpeg.Decode(bytes.NewReader(page.Data))
		require.NoError(t, err)
		assert.Equal(t, page.Width, decoded.Bounds().Dx())
	}
	assert.Equal(t, 450, pages[0].Width)
	assert.Equal(t, 200, pages[4].Width)
}

func TestSplitter_Downscales(t *testing.T) {
	splitter := NewSplitter(100, 85)
	img := image.NewRGBA(image.Rect(0, 0, 150, 300))

	pages, err := splitter.Split(img)

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 50, pages[0].Width)
	assert.Equal(t, 100, pages[0].Height)
}

func TestRenderer_RenderPages(t *testing.T) {
	renderer := NewRenderer(NewStitcher(testLogger()), NewSplitter(4096, 85), testLogger())

	t.Run("no tiles", func(t *testing.T) {
		_, err := renderer.RenderPages(context.Background(), 2, 2, nil)
		assert.ErrorIs(t, err, domain.ErrNoTilesFetched)
	})

	t.Run("one page", func(t *testing.T) {
		tiles := []domain.TileImage{{Ref: domain.TileRef{Col: 0, Row: 0}, Data: solidTile(t, red)}}

		pages, err := renderer.RenderPages(context.Background(), 2, 3, tiles)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, 512, pages[0].Width)
		assert.Equal(t, 768, pages[0].Height)
	})
}
