package job

import (
	"context"
	"errors"
	"testing"

	"flyer-ingest/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	calls     int
	gotZips   []string
	summaries []*domain.JobSummary
	err       error
}

func (s *stubRunner) ProcessZipCodes(_ context.Context, zipCodes []string) ([]*domain.JobSummary, error) {
	s.calls++
	s.gotZips = zipCodes
	return s.summaries, s.err
}

func TestZipIngestJob(t *testing.T) {
	failure := errors.New("ingest zip 10001: flyer metadata unavailable")

	tests := []struct {
		name      string
		zips      []string
		runner    *stubRunner
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "no zip codes configured",
			runner:    &stubRunner{},
			wantCalls: 0,
		},
		{
			name: "all succeed",
			zips: []string{"07001", "10001"},
			runner: &stubRunner{summaries: []*domain.JobSummary{
				{Success: true, ZipCode: "07001", NewFlyers: 1, TotalDeals: 12},
				{Success: true, ZipCode: "10001"},
			}},
			wantCalls: 1,
		},
		{
			name: "partial failure is tolerated",
			zips: []string{"07001", "10001"},
			runner: &stubRunner{
				summaries: []*domain.JobSummary{
					{Success: true, ZipCode: "07001"},
					{Success: false, ZipCode: "10001"},
				},
				err: failure,
			},
			wantCalls: 1,
		},
		{
			name: "every zip failed",
			zips: []string{"10001"},
			runner: &stubRunner{
				summaries: []*domain.JobSummary{{Success: false, ZipCode: "10001"}},
				err:       failure,
			},
			wantCalls: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := ZipIngestJob(tt.runner, tt.zips, discardLogger())

			err := fn(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, failure)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, tt.runner.calls)
			if tt.wantCalls > 0 {
				assert.Equal(t, tt.zips, tt.runner.gotZips)
			}
		})
	}
}
