package middleware

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// AccessLog logs one line per request once the handler has written its response.
// It reads the request ID set by RequestMetaMiddleware, so register it after that.
func AccessLog(logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		meta := RequestMetaFromContext(ctx.Context())
		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("route", route(ctx)),
			zap.Int("status", ctx.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", meta.RequestID),
			zap.String("client_ip", meta.ClientIP),
		}

		if ctx.Status() >= 500 {
			logger.Error("request", fields...)

			return
		}

		logger.Info("request", fields...)
	}
}

// route is the operation's path template, never the raw path, so codes
// do not leak into labels or logs.
func route(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return "unknown"
}
