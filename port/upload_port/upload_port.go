//go:generate go run go.uber.org/mock/mockgen -source=upload_port.go -destination=../../mocks/mock_upload_port.go -package=mocks

package upload_port

import (
	"context"
	"flyer-ingest/domain"
)

// PageUploaderPort stores a page on image hosting. It never fails: when
// hosting is unavailable the result carries the page's fallback URL.
type PageUploaderPort interface {
	UploadPage(ctx context.Context, flyerRunID string, page domain.PageUpload) domain.UploadResult
}
