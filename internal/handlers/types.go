package handlers

import "time"

// CreateShortURLRequest is the request body for creating a short URL.
type CreateShortURLRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// CreateShortURLResponse is the response for a successfully shortened URL.
type CreateShortURLResponse struct {
	Body struct {
		URL      string `doc:"The original URL"   example:"https://example.com/very/long/path" json:"url"`
		ShortURL string `doc:"The full short URL" example:"http://localhost:8080/aB3xY9"       json:"short_url"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aB3xY9" path:"code"`
}

// RedirectResponse sends the client to the stored URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The original URL" header:"Location"`
}

// URLEntry is one stored mapping as listed by GET /urls.
type URLEntry struct {
	URL       string    `doc:"The original URL"         json:"url"`
	Timestamp time.Time `doc:"When the code was issued" json:"timestamp"`
}

// ListURLsResponse lists every stored mapping keyed by code, expired or not.
type ListURLsResponse struct {
	Body map[string]URLEntry
}
