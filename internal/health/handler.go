package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Counter reports how many entries the registry currently holds.
type Counter interface {
	Len() int
}

// Handler handles health check operations.
type Handler struct {
	registry Counter
}

// NewHandler creates a new health handler.
func NewHandler(registry Counter) *Handler {
	return &Handler{registry: registry}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status  string `doc:"Service status"                                  example:"ok" json:"status"`
		Entries int    `doc:"Stored entries, including unswept expired ones" example:"3"  json:"entries"`
	}
}

// Check reports liveness. The registry is in-process, so there is no degraded state.
func (h *Handler) Check(_ context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Entries = h.registry.Len()

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Check)
}
