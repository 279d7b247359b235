//go:generate go run go.uber.org/mock/mockgen -source=flyer_source_port.go -destination=../../mocks/mock_flyer_source_port.go -package=mocks

package flyer_source_port

import (
	"context"
	"flyer-ingest/domain"
)

// FlyerSourcePort lists the flyers published for a ZIP code.
type FlyerSourcePort interface {
	FetchFlyers(ctx context.Context, zipCode string) ([]domain.FlyerSource, error)
}
