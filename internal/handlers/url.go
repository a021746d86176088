package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/url-registry/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler exposes the registry over HTTP.
type URLHandler struct {
	registry shortener.Registry
	baseURL  string
	logger   *zap.Logger
}

// NewURLHandler creates a new URL handler. Short URLs are baseURL + "/" + code.
func NewURLHandler(registry shortener.Registry, baseURL string, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		registry: registry,
		baseURL:  baseURL,
		logger:   logger,
	}
}

func (h *URLHandler) CreateShortURL(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	entry, err := h.registry.Shorten(ctx, req.Body.URL)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error400BadRequest("validation failed", &huma.ErrorDetail{
				Message:  err.Error(),
				Location: "body.url",
				Value:    req.Body.URL,
			})
		case errors.Is(err, shortener.ErrGenerationExhausted):
			h.logger.Error("failed to shorten url", zap.Error(err))

			return nil, huma.Error500InternalServerError("no short code available, try again")
		default:
			h.logger.Error("failed to shorten url", zap.Error(err))

			return nil, huma.Error500InternalServerError("failed to shorten url")
		}
	}

	resp := &CreateShortURLResponse{}
	resp.Body.URL = entry.URL
	resp.Body.ShortURL = h.baseURL + "/" + string(entry.Code)

	return resp, nil
}

func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	url, err := h.registry.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("URL not found")
		}

		h.logger.Error("failed to resolve code", zap.String("code", req.Code), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to resolve code")
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: url,
	}, nil
}

func (h *URLHandler) ListURLs(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	entries := h.registry.ListAll(ctx)

	resp := &ListURLsResponse{Body: make(map[string]URLEntry, len(entries))}
	for _, entry := range entries {
		resp.Body[string(entry.Code)] = URLEntry{
			URL:       entry.URL,
			Timestamp: entry.CreatedAt,
		}
	}

	return resp, nil
}
