package job

import (
	"context"
	"fmt"
	"log/slog"

	"flyer-ingest/domain"
)

// zipBatchRunner is the part of the ingest usecase the job drives.
type zipBatchRunner interface {
	ProcessZipCodes(ctx context.Context, zipCodes []string) ([]*domain.JobSummary, error)
}

// ZipIngestJob returns a scheduler function that ingests every configured
// ZIP. It fails only when every ZIP failed; partial failures are logged.
func ZipIngestJob(runner zipBatchRunner, zipCodes []string, logger *slog.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if len(zipCodes) == 0 {
			logger.InfoContext(ctx, "zip ingest skipped: no zip codes configured")
			return nil
		}

		summaries, err := runner.ProcessZipCodes(ctx, zipCodes)

		succeeded, newFlyers, deals := 0, 0, 0
		for _, summary := range summaries {
			if summary == nil || !summary.Success {
				continue
			}
			succeeded++
			newFlyers += summary.NewFlyers
			deals += summary.TotalDeals
		}

		logger.InfoContext(ctx, "zip ingest round finished",
			"zip_codes", len(zipCodes),
			"succeeded", succeeded,
			"new_flyers", newFlyers,
			"deals", deals)

		if err != nil {
			if succeeded == 0 {
				return fmt.Errorf("all %d zip runs failed: %w", len(zipCodes), err)
			}
			logger.WarnContext(ctx, "some zip runs failed", "error", err)
		}
		return nil
	}
}
