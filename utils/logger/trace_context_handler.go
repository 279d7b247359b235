package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type ContextKey string

const (
	JobIDKey      ContextKey = "job_id"
	ZipCodeKey    ContextKey = "zip_code"
	FlyerRunIDKey ContextKey = "flyer_run_id"
)

// WithJobID tags ctx with the scheduler job id.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, JobIDKey, jobID)
}

// WithZipCode tags ctx with the ZIP being ingested.
func WithZipCode(ctx context.Context, zipCode string) context.Context {
	return context.WithValue(ctx, ZipCodeKey, zipCode)
}

// WithFlyerRunID tags ctx with the flyer being processed.
func WithFlyerRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, FlyerRunIDKey, runID)
}

// TraceContextHandler wraps an slog.Handler and adds trace_id/span_id plus
// the pipeline identifiers stored in the context.
type TraceContextHandler struct {
	inner slog.Handler
}

// NewTraceContextHandler creates a new TraceContextHandler wrapping the provided handler.
func NewTraceContextHandler(inner slog.Handler) *TraceContextHandler {
	return &TraceContextHandler{inner: inner}
}

// Enabled delegates to the inner handler.
func (h *TraceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle adds context attributes to the record before delegating to the inner handler.
func (h *TraceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	for _, key := range []ContextKey{JobIDKey, ZipCodeKey, FlyerRunIDKey} {
		if value, ok := ctx.Value(key).(string); ok && value != "" {
			r.AddAttrs(slog.String(string(key), value))
		}
	}

	return h.inner.Handle(ctx, r)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *TraceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceContextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a new handler with the given group appended.
func (h *TraceContextHandler) WithGroup(name string) slog.Handler {
	return &TraceContextHandler{inner: h.inner.WithGroup(name)}
}
