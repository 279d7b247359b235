//go:generate go run go.uber.org/mock/mockgen -source=product_image_port.go -destination=../../mocks/mock_product_image_port.go -package=mocks

package product_image_port

import (
	"context"
	"flyer-ingest/domain"
)

// ProductImagePort fills Deal.ImageURL in place where a product photo is
// found and returns how many deals were enriched.
type ProductImagePort interface {
	Enrich(ctx context.Context, deals []domain.Deal) int
}
