//go:generate go run go.uber.org/mock/mockgen -source=ocr_port.go -destination=../../mocks/mock_ocr_port.go -package=mocks

package ocr_port

import (
	"context"
	"flyer-ingest/domain"
)

// DealExtractorPort turns one page image into deals. A *domain.DecodeError
// means the model answered but its output held no usable deal list.
type DealExtractorPort interface {
	ExtractDeals(ctx context.Context, pageURL string) ([]domain.Deal, error)
}
