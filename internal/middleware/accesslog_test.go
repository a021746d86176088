package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-registry/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type codeInput struct {
	Code string `path:"code"`
}

type recorderStub struct {
	calls []string
}

func (r *recorderStub) RequestStarted() func(method, route string, status int) {
	return func(method, route string, status int) {
		r.calls = append(r.calls, method+" "+route+" "+http.StatusText(status))
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	router, api := setupTestAPI(t)
	api.UseMiddleware(middleware.AccessLog(zap.New(core)))

	huma.Get(api, "/{code}", func(_ context.Context, in *codeInput) (*testOutput, error) {
		if in.Code == "boom" {
			return nil, huma.Error500InternalServerError("boom")
		}

		return &testOutput{Body: in.Code}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/abc123", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/{code}", first["route"])
	assert.Equal(t, int64(http.StatusOK), first["status"])
	assert.Equal(t, "req-1", first["request_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[1].ContextMap()["status"])
}

func TestMetrics(t *testing.T) {
	recorder := &recorderStub{}

	router, api := setupTestAPI(t)
	api.UseMiddleware(middleware.Metrics(recorder))

	huma.Get(api, "/{code}", func(_ context.Context, in *codeInput) (*testOutput, error) {
		if in.Code == "missing" {
			return nil, huma.Error404NotFound("URL not found")
		}

		return &testOutput{Body: in.Code}, nil
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abc123", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, []string{
		"GET /{code} OK",
		"GET /{code} Not Found",
	}, recorder.calls)
}
