//go:generate go run go.uber.org/mock/mockgen -source=flyer_store_port.go -destination=../../mocks/mock_flyer_store_port.go -package=mocks

package flyer_store_port

import (
	"context"
	"flyer-ingest/domain"
)

// FlyerStorePort persists flyers and their deals.
type FlyerStorePort interface {
	FlyerExists(ctx context.Context, flyerRunID string) (bool, error)
	// PersistFlyer creates the flyer with its deals in one transaction, or
	// corrects the ZIP of an existing row with the same run id.
	PersistFlyer(ctx context.Context, flyer domain.Flyer, deals []domain.Deal) (domain.PersistResult, error)
}
