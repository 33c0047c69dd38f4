package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// MultiHandler fans each record out to several handlers, typically stdout
// and the journal.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a handler that writes to all provided handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: slices.Clone(handlers)}
}

// Enabled reports whether any handler accepts level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(m.handlers, func(h slog.Handler) bool {
		return h.Enabled(ctx, level)
	})
}

// Handle passes r to every handler enabled for its level. A failing handler
// does not stop the others; errors are joined.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return m
	}
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *MultiHandler) each(fn func(slog.Handler) slog.Handler) *MultiHandler {
	out := &MultiHandler{handlers: make([]slog.Handler, 0, len(m.handlers))}
	for _, h := range m.handlers {
		out.handlers = append(out.handlers, fn(h))
	}
	return out
}
