//go:generate go run go.uber.org/mock/mockgen -source=job_status_port.go -destination=../../mocks/mock_job_status_port.go -package=mocks

package job_status_port

import (
	"context"
	"flyer-ingest/domain"
)

// JobStatusPort tracks ZIP runs. Lookups return domain.ErrJobNotFound when
// nothing is recorded.
type JobStatusPort interface {
	Save(ctx context.Context, status *domain.JobStatus) error
	Get(ctx context.Context, id string) (*domain.JobStatus, error)
	LatestForZip(ctx context.Context, zipCode string) (*domain.JobStatus, error)
}
