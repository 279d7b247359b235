package domain

import "fmt"

// PageUpload is one page handed to image hosting. Exactly one of Data or
// SourceURL is set: stitched pages carry encoded bytes, LowMemory pages the
// CDN URL of the overview tile.
type PageUpload struct {
	Index       int
	Data        []byte
	SourceURL   string
	FallbackURL string
}

// UploadResult is the URL persisted for one page.
type UploadResult struct {
	Index  int
	URL    string
	Hosted bool
}

// PagePublicID is the hosting object key for a page of a flyer run.
func PagePublicID(flyerRunID string, index int) string {
	return fmt.Sprintf("flyers/%s/page_%d", flyerRunID, index)
}
