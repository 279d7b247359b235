package domain

import (
	"fmt"
	"strings"
)

const (
	// TileSize is the edge length in pixels of every CDN tile.
	TileSize = 256

	// NativeZoom is the full-resolution CDN zoom level.
	NativeZoom = 5
	// ReducedZoom halves both axes of the native grid.
	ReducedZoom = 4
	// OverviewZoom tiles are pre-rendered page-sized images.
	OverviewZoom = 0

	// MaxProbeColumns bounds HEAD probing along the column axis.
	MaxProbeColumns = 20
	// MaxProbeRows bounds HEAD probing along the row axis.
	MaxProbeRows = 15
)

// TileGrid describes how many tiles cover a flyer at a given zoom level.
type TileGrid struct {
	Cols int
	Rows int
	Zoom int
}

// TotalTiles returns cols*rows.
func (g TileGrid) TotalTiles() int {
	return g.Cols * g.Rows
}

// IsEmpty reports whether the grid has no renderable content.
func (g TileGrid) IsEmpty() bool {
	return g.Cols < 1 || g.Rows < 1
}

// GridFromDimensions derives the native tile grid from declared pixel dimensions.
// Non-positive dimensions yield an empty grid.
func GridFromDimensions(width, height int) TileGrid {
	if width <= 0 || height <= 0 {
		return TileGrid{Zoom: NativeZoom}
	}
	return TileGrid{
		Cols: ceilDiv(width, TileSize),
		Rows: ceilDiv(height, TileSize),
		Zoom: NativeZoom,
	}
}

// TileRef addresses one tile on the CDN. Row 0 is the visual bottom of the image.
type TileRef struct {
	Zoom int
	Col  int
	Row  int
}

// TileURL builds {baseURL}/{flyerPath}{zoom}_{col}_{row}.jpg.
func TileURL(baseURL, flyerPath string, ref TileRef) string {
	return fmt.Sprintf("%s/%s%d_%d_%d.jpg",
		strings.TrimRight(baseURL, "/"),
		strings.TrimLeft(flyerPath, "/"),
		ref.Zoom, ref.Col, ref.Row)
}

// TileImage is a successfully fetched tile.
type TileImage struct {
	Ref  TileRef
	Data []byte
}

// TileFetchError records a tile that could not be fetched.
type TileFetchError struct {
	Ref TileRef
	Err error
}

func (e TileFetchError) Error() string {
	return fmt.Sprintf("tile %d_%d_%d: %v", e.Ref.Zoom, e.Ref.Col, e.Ref.Row, e.Err)
}

func (e TileFetchError) Unwrap() error {
	return e.Err
}

// TileFetchReport splits a batch download into successes and failures.
type TileFetchReport struct {
	Tiles    []TileImage
	Failures []TileFetchError
}

// PageImage is one encoded page cut from a composite.
type PageImage struct {
	Index  int
	Data   []byte
	Width  int
	Height int
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// OverviewPageRef returns the zoom 0 tile that is page index in reading
// order (top row first, left to right). Row indices are inverted because row 0
// is the visual bottom.
func OverviewPageRef(grid TileGrid, index int) (TileRef, bool) {
	if grid.IsEmpty() || index < 0 || index >= grid.TotalTiles() {
		return TileRef{}, false
	}
	return TileRef{
		Zoom: OverviewZoom,
		Col:  index % grid.Cols,
		Row:  grid.Rows - 1 - index/grid.Cols,
	}, true
}

// OverviewPages lists zoom 0 tiles in reading order, stopping at maxPages.
func OverviewPages(grid TileGrid, maxPages int) []TileRef {
	if grid.IsEmpty() || maxPages <= 0 {
		return nil
	}

	refs := make([]TileRef, 0, min(grid.TotalTiles(), maxPages))
	for i := 0; i < grid.TotalTiles() && i < maxPages; i++ {
		ref, _ := OverviewPageRef(grid, i)
		refs = append(refs, ref)
	}
	return refs
}
