package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobSummary is the per-ZIP outcome of one ingestion run.
type JobSummary struct {
	Success         bool     `json:"success"`
	ZipCode         string   `json:"zipCode"`
	FlyersFound     int      `json:"flyersFound"`
	FlyersProcessed int      `json:"flyersProcessed"`
	NewFlyers       int      `json:"newFlyers"`
	TotalDeals      int      `json:"totalDeals"`
	Errors          []string `json:"errors,omitempty"`
}

// JobState tracks a run through the scheduler.
type JobState string

const (
	JobStateQueued    JobState = "queued"
	JobStateRunning   JobState = "running"
	JobStateSucceeded JobState = "succeeded"
	JobStateFailed    JobState = "failed"
)

// JobStatus is the process-local record of one ZIP run.
type JobStatus struct {
	ID         string      `json:"id"`
	ZipCode    string      `json:"zipCode"`
	State      JobState    `json:"state"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt *time.Time  `json:"finishedAt,omitempty"`
	Summary    *JobSummary `json:"summary,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// NewJobStatus creates a queued status for zipCode.
func NewJobStatus(zipCode string, now time.Time) *JobStatus {
	return &JobStatus{
		ID:        uuid.NewString(),
		ZipCode:   zipCode,
		State:     JobStateQueued,
		StartedAt: now,
	}
}

// Finish records the summary and the terminal state.
func (s *JobStatus) Finish(summary *JobSummary, err error, now time.Time) {
	s.FinishedAt = &now
	s.Summary = summary
	s.State = JobStateSucceeded
	if err != nil {
		s.State = JobStateFailed
		s.Error = err.Error()
	}
}
