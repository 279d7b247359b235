// Package job_status_store keeps per-ZIP run records for the status API.
package job_status_store

import (
	"context"
	"sync"

	"flyer-ingest/domain"
)

// MemoryStore is a process-local job status store.
type MemoryStore struct {
	mu     sync.RWMutex
	jobs   map[string]domain.JobStatus
	latest map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:   make(map[string]domain.JobStatus),
		latest: make(map[string]string),
	}
}

func (s *MemoryStore) Save(_ context.Context, status *domain.JobStatus) error {
	if status == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[status.ID] = cloneStatus(status)
	s.latest[status.ZipCode] = status.ID
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.JobStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	out := cloneStatus(&status)
	return &out, nil
}

func (s *MemoryStore) LatestForZip(ctx context.Context, zipCode string) (*domain.JobStatus, error) {
	s.mu.RLock()
	id, ok := s.latest[zipCode]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return s.Get(ctx, id)
}

// cloneStatus copies status so callers cannot mutate stored records.
func cloneStatus(status *domain.JobStatus) domain.JobStatus {
	out := *status
	if status.FinishedAt != nil {
		finished := *status.FinishedAt
		out.FinishedAt = &finished
	}
	if status.Summary != nil {
		summary := *status.Summary
		summary.Errors = append([]string(nil), status.Summary.Errors...)
		out.Summary = &summary
	}
	return out
}
