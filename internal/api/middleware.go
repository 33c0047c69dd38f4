package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/glyphd/internal/logging"
)

// quietPrefixes are polled paths logged at debug level when successful.
var quietPrefixes = []string{"/api/health", "/api/zones"}

// HTTPLoggingMiddleware logs each request with a level derived from its outcome.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	logger := logging.GetLogger("http")

	method := ctx.Method()
	path := ctx.URL().Path

	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", path),
		slog.String("remote_addr", ctx.RemoteAddr()),
	}
	if query := ctx.URL().RawQuery; query != "" && !strings.Contains(query, "auth=") {
		attrs = append(attrs, slog.String("query", query))
	}
	if op := ctx.Operation(); op != nil && op.OperationID != "" {
		attrs = append(attrs, slog.String("operation", op.OperationID))
	}

	next(ctx)

	status := ctx.Status()
	attrs = append(attrs,
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	logger.LogAttrs(ctx.Context(), requestLevel(method, path, status), "HTTP request completed", attrs...)
}

func requestLevel(method, path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case method == http.MethodOptions:
		return slog.LevelDebug
	}
	for _, prefix := range quietPrefixes {
		if method == http.MethodGet && strings.HasPrefix(path, prefix) {
			return slog.LevelDebug
		}
	}
	return slog.LevelInfo
}
