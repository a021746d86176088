package health_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/url-registry/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countStub int

func (c countStub) Len() int {
	return int(c)
}

func TestHandler_Check(t *testing.T) {
	handler := health.NewHandler(countStub(3))

	resp, err := handler.Check(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Body.Status)
	assert.Equal(t, 3, resp.Body.Entries)
}

func TestRegisterRoutes(t *testing.T) {
	_, api := humatest.New(t)
	health.RegisterRoutes(api, health.NewHandler(countStub(0)))

	resp := api.Get("/health")

	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.InDelta(t, 0, body["entries"], 0)
}
