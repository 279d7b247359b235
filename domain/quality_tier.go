package domain

// QualityTier selects how a flyer is reconstructed under the memory ceiling.
type QualityTier int

const (
	// TierFull stitches every native tile.
	TierFull QualityTier = iota
	// TierMedium stitches the zoom 4 grid (about a quarter of the tiles).
	TierMedium
	// TierLowMemory skips stitching and uploads zoom 0 tiles as pages.
	TierLowMemory
)

const (
	fullTierMaxTiles   = 120
	mediumTierMaxTiles = 300

	fullTierBatchSize   = 30
	mediumTierBatchSize = 20

	// MaxLowMemoryPages caps how many zoom 0 tiles become pages.
	MaxLowMemoryPages = 20
)

func (t QualityTier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierMedium:
		return "medium"
	case TierLowMemory:
		return "low_memory"
	default:
		return "unknown"
	}
}

// RenderPlan is the fetch and stitch recipe for one tier.
type RenderPlan struct {
	Tier      QualityTier
	Zoom      int
	Cols      int
	Rows      int
	BatchSize int
	MaxPages  int
}

// Stitched reports whether the plan composes tiles into one canvas.
func (p RenderPlan) Stitched() bool {
	return p.Tier != TierLowMemory
}

// SelectQualityTier picks a tier from the native tile count.
func SelectQualityTier(totalTiles int) QualityTier {
	switch {
	case totalTiles <= fullTierMaxTiles:
		return TierFull
	case totalTiles <= mediumTierMaxTiles:
		return TierMedium
	default:
		return TierLowMemory
	}
}

// SelectRenderPlan maps a native grid onto the plan for its tier.
func SelectRenderPlan(grid TileGrid) RenderPlan {
	tier := SelectQualityTier(grid.TotalTiles())

	switch tier {
	case TierFull:
		return RenderPlan{
			Tier:      TierFull,
			Zoom:      NativeZoom,
			Cols:      grid.Cols,
			Rows:      grid.Rows,
			BatchSize: fullTierBatchSize,
		}
	case TierMedium:
		return RenderPlan{
			Tier:      TierMedium,
			Zoom:      ReducedZoom,
			Cols:      ceilDiv(grid.Cols, 2),
			Rows:      ceilDiv(grid.Rows, 2),
			BatchSize: mediumTierBatchSize,
		}
	default:
		return RenderPlan{
			Tier:     TierLowMemory,
			Zoom:     OverviewZoom,
			Cols:     grid.Cols,
			Rows:     grid.Rows,
			MaxPages: MaxLowMemoryPages,
		}
	}
}
