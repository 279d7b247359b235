// Package metrics provides Prometheus metrics for flyer-ingest.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flyer_ingest"

var (
	// ZipRunsTotal counts ZIP pipeline runs by outcome.
	ZipRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zip_runs_total",
			Help:      "Total number of ZIP ingestion runs",
		},
		[]string{"status"},
	)

	// ZipRunDuration measures one ZIP pipeline run.
	ZipRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "zip_run_duration_seconds",
			Help:      "Duration of ZIP ingestion runs in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	// FlyersTotal counts flyers by outcome (created, existing, skipped, failed).
	FlyersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flyers_total",
			Help:      "Total number of flyers handled",
		},
		[]string{"outcome"},
	)

	// QualityTierTotal counts flyers by selected reconstruction tier.
	QualityTierTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quality_tier_total",
			Help:      "Flyers rendered per quality tier",
		},
		[]string{"tier"},
	)

	// TileFetchTotal counts tile downloads by status.
	TileFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tile_fetch_total",
			Help:      "Total number of tile fetches",
		},
		[]string{"status"},
	)

	// UploadTotal counts page uploads by result (hosted, fallback).
	UploadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_upload_total",
			Help:      "Total number of page uploads",
		},
		[]string{"result"},
	)

	// OCRRequestDuration measures extraction model calls.
	OCRRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ocr_request_duration_seconds",
			Help:      "Duration of extraction model requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// DealsExtracted observes accepted and rejected deals.
	DealsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deals_extracted_total",
			Help:      "Deals parsed from model output",
		},
		[]string{"result"},
	)

	// EnrichLookupsTotal counts product image lookups by result (hit, miss, cached, error).
	EnrichLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrich_lookups_total",
			Help:      "Product image lookups",
		},
		[]string{"result"},
	)

	// ErrorsTotal counts errors by operation and type.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors",
		},
		[]string{"operation", "error_type"},
	)
)

// RecordZipRun records a finished ZIP run.
func RecordZipRun(status string, duration float64) {
	ZipRunsTotal.WithLabelValues(status).Inc()
	ZipRunDuration.Observe(duration)
}

// RecordFlyer records a flyer outcome.
func RecordFlyer(outcome string) {
	FlyersTotal.WithLabelValues(outcome).Inc()
}

// RecordQualityTier records the tier chosen for a flyer.
func RecordQualityTier(tier string) {
	QualityTierTotal.WithLabelValues(tier).Inc()
}

// RecordTileFetch records one tile download.
func RecordTileFetch(status string) {
	TileFetchTotal.WithLabelValues(status).Inc()
}

// RecordUpload records a page upload result.
func RecordUpload(result string) {
	UploadTotal.WithLabelValues(result).Inc()
}

// RecordOCRRequest records an extraction model call.
func RecordOCRRequest(status string, duration float64) {
	OCRRequestDuration.WithLabelValues(status).Observe(duration)
}

// RecordDeals records accepted and rejected deal counts.
func RecordDeals(accepted, rejected int) {
	DealsExtracted.WithLabelValues("accepted").Add(float64(accepted))
	DealsExtracted.WithLabelValues("rejected").Add(float64(rejected))
}

// RecordEnrichLookup records a product image lookup.
func RecordEnrichLookup(result string) {
	EnrichLookupsTotal.WithLabelValues(result).Inc()
}

// RecordError records an error.
func RecordError(operation, errorType string) {
	ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}
