package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_JSONFormat(t *testing.T) {
	tests := map[string]struct {
		level    slog.Level
		message  string
		args     []any
		expected map[string]any
	}{
		"info with attributes": {
			level:   slog.LevelInfo,
			message: "flyer persisted",
			args:    []any{"deals", 12},
			expected: map[string]any{
				"level":   "info",
				"msg":     "flyer persisted",
				"deals":   float64(12),
				"service": "flyer-ingest",
			},
		},
		"error level": {
			level:   slog.LevelError,
			message: "metadata fetch failed",
			args:    []any{"error", "timeout"},
			expected: map[string]any{
				"level": "error",
				"msg":   "metadata fetch failed",
				"error": "timeout",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, Config{Level: "debug", ServiceName: "flyer-ingest", Version: "test"}, false)

			log.Log(context.Background(), tc.level, tc.message, tc.args...)

			entry := decodeLine(t, &buf)
			for key, want := range tc.expected {
				assert.Equal(t, want, entry[key], "key %s", key)
			}
			assert.Contains(t, entry, "time")
		})
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Config{Level: "warn", ServiceName: "flyer-ingest"}, false)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestTraceContextHandler_AddsContext(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(provider)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	var buf bytes.Buffer
	log := New(&buf, Config{Level: "info", ServiceName: "flyer-ingest"}, false)

	ctx, span := otel.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()
	ctx = WithZipCode(ctx, "07001")
	ctx = WithFlyerRunID(ctx, "run-42")

	log.InfoContext(ctx, "processing flyer")

	entry := decodeLine(t, &buf)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
	assert.Equal(t, "07001", entry["zip_code"])
	assert.Equal(t, "run-42", entry["flyer_run_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

type recordingHandler struct {
	level   slog.Level
	records *[]slog.Record
}

func (h recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }
func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}
func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestTeeHandler(t *testing.T) {
	var local, exported []slog.Record
	tee := &teeHandler{
		local:  recordingHandler{level: slog.LevelWarn, records: &local},
		export: recordingHandler{level: slog.LevelInfo, records: &exported},
	}
	log := slog.New(tee)

	log.Debug("nowhere")
	log.Info("export only")
	log.Error("both")

	require.Len(t, exported, 2)
	require.Len(t, local, 1)
	assert.Equal(t, "both", local[0].Message)
	assert.True(t, tee.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, tee.Enabled(context.Background(), slog.LevelDebug))
}
