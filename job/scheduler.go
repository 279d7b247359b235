package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"flyer-ingest/utils/logger"

	"github.com/google/uuid"
)

// Job is a named periodic task. Interval is measured from the end of one
// round to the start of the next, so a slow ingest round never overlaps the
// following one. With SkipInitialRun the first round waits one interval.
type Job struct {
	Name           string
	Interval       time.Duration
	Timeout        time.Duration
	SkipInitialRun bool
	Fn             func(ctx context.Context) error
}

// JobScheduler runs registered jobs until its context is cancelled. Every
// round gets a fresh job id in its context for log correlation.
type JobScheduler struct {
	jobs   []Job
	logger *slog.Logger
	newID  func() string
	wg     sync.WaitGroup
}

func NewJobScheduler(logger *slog.Logger) *JobScheduler {
	return &JobScheduler{logger: logger, newID: uuid.NewString}
}

// Add registers a job to be run when Start is called.
func (s *JobScheduler) Add(j Job) {
	s.jobs = append(s.jobs, j)
}

// Start launches every job in its own goroutine.
func (s *JobScheduler) Start(ctx context.Context) {
	for _, j := range s.jobs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, j)
		}()
	}
}

func (s *JobScheduler) loop(ctx context.Context, j Job) {
	var firstWait time.Duration
	if j.SkipInitialRun {
		firstWait = j.Interval
	}
	timer := time.NewTimer(firstWait)
	defer timer.Stop()

	rounds := 0
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "job stopping", "job", j.Name, "rounds", rounds)
			return
		case <-timer.C:
		}

		if ctx.Err() != nil {
			continue
		}
		rounds++
		s.runRound(ctx, j, rounds)
		timer.Reset(j.Interval)
	}
}

func (s *JobScheduler) runRound(ctx context.Context, j Job, round int) {
	roundCtx := logger.WithJobID(ctx, s.newID())
	roundCtx, cancel := context.WithTimeout(roundCtx, j.Timeout)
	defer cancel()

	start := time.Now()
	err := j.Fn(roundCtx)
	attrs := []any{
		"job", j.Name,
		"round", round,
		"duration", time.Since(start),
		"next_run_in", j.Interval,
	}
	if err != nil {
		s.logger.ErrorContext(roundCtx, "job round failed", append(attrs, "error", err)...)
		return
	}
	s.logger.InfoContext(roundCtx, "job round completed", attrs...)
}

// Shutdown blocks until all running jobs return.
func (s *JobScheduler) Shutdown() {
	s.wg.Wait()
}
