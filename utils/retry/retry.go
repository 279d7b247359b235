// ABOUTME: This file implements a retry loop with linear or exponential backoff and jitter
// ABOUTME: Used for image hosting uploads and any other call that may fail transiently
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy selects how the wait grows between attempts.
type BackoffStrategy int

const (
	// BackoffExponential waits BaseDelay * BackoffFactor^(attempt-1).
	BackoffExponential BackoffStrategy = iota
	// BackoffLinear waits BaseDelay * attempt.
	BackoffLinear
)

type RetryConfig struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
	Strategy      BackoffStrategy
}

// LinearConfig returns a config making 1+retries attempts with linear backoff.
func LinearConfig(retries int, baseDelay time.Duration) RetryConfig {
	return RetryConfig{
		MaxAttempts: retries + 1,
		BaseDelay:   baseDelay,
		MaxDelay:    baseDelay * time.Duration(retries+1),
		Strategy:    BackoffLinear,
	}
}

type ErrorClassifier func(error) bool

// AlwaysRetry treats every error as transient.
func AlwaysRetry(error) bool { return true }

type Retrier struct {
	config      RetryConfig
	isRetryable ErrorClassifier
	logger      *slog.Logger
}

func NewRetrier(config RetryConfig, classifier ErrorClassifier, logger *slog.Logger) *Retrier {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Retrier{
		config:      config,
		isRetryable: classifier,
		logger:      logger,
	}
}

func (r *Retrier) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	start := time.Now()
	var lastErr error
	var totalWaitTime time.Duration

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		lastErr = operation(ctx)
		if lastErr == nil {
			if attempt > 1 {
				r.logger.InfoContext(ctx, "operation succeeded after retry",
					"attempt", attempt,
					"total_duration_ms", time.Since(start).Milliseconds(),
					"total_wait_time_ms", totalWaitTime.Milliseconds())
			}
			return nil
		}

		isRetryable := r.isRetryable != nil && r.isRetryable(lastErr)
		r.logger.WarnContext(ctx, "operation attempt failed",
			"attempt", attempt,
			"max_attempts", r.config.MaxAttempts,
			"error", lastErr,
			"retryable", isRetryable)

		if attempt == r.config.MaxAttempts || !isRetryable {
			break
		}

		delay := r.calculateDelay(attempt)
		totalWaitTime += delay

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("operation failed after %d attempts (total: %dms, wait: %dms): %w",
		r.config.MaxAttempts, time.Since(start).Milliseconds(), totalWaitTime.Milliseconds(), lastErr)
}

func (r *Retrier) calculateDelay(attempt int) time.Duration {
	var delay float64
	switch r.config.Strategy {
	case BackoffLinear:
		delay = float64(r.config.BaseDelay) * float64(attempt)
	default:
		delay = float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt-1))
	}

	if r.config.MaxDelay > 0 && delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	if r.config.JitterFactor > 0 {
		delay *= 1.0 + (rand.Float64()-0.5)*r.config.JitterFactor
	}

	return time.Duration(delay)
}
