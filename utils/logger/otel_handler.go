package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

// teeHandler writes every record to the local handler and mirrors it to the
// OTel log pipeline. Only errors from the local handler are reported.
type teeHandler struct {
	local  slog.Handler
	export slog.Handler
}

// newOTelTee pairs local with an otelslog handler bound to the global log
// provider, so records carry the span from the ctx they were logged with.
func newOTelTee(scope string, local slog.Handler) slog.Handler {
	return &teeHandler{
		local:  local,
		export: otelslog.NewHandler(scope, otelslog.WithLoggerProvider(global.GetLoggerProvider())),
	}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.local.Enabled(ctx, level) || h.export.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.export.Enabled(ctx, r.Level) {
		_ = h.export.Handle(ctx, r.Clone())
	}
	if !h.local.Enabled(ctx, r.Level) {
		return nil
	}
	return h.local.Handle(ctx, r)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{local: h.local.WithAttrs(attrs), export: h.export.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{local: h.local.WithGroup(name), export: h.export.WithGroup(name)}
}
