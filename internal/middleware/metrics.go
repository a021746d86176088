package middleware

import "github.com/danielgtaylor/huma/v2"

// RequestRecorder tracks request counts and latency.
type RequestRecorder interface {
	RequestStarted() func(method, route string, status int)
}

// Metrics records every request with recorder, labelled by route template.
func Metrics(recorder RequestRecorder) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		done := recorder.RequestStarted()

		next(ctx)

		done(ctx.Method(), route(ctx), ctx.Status())
	}
}
