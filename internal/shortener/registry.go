package shortener

import "context"

// Registry defines the operations the request layer needs from the URL store.
type Registry interface {
	// Shorten returns the live entry for url, creating one if none exists.
	Shorten(ctx context.Context, url string) (*Entry, error)

	// Resolve returns the original URL for code.
	// Returns ErrNotFound if the code is unknown.
	Resolve(ctx context.Context, code Code) (string, error)

	// ListAll returns every stored entry in insertion order.
	ListAll(ctx context.Context) []Entry
}
