package shortener

import "time"

// Code represents a short URL code.
type Code string

// Entry is a single code -> URL mapping held by the registry.
type Entry struct {
	Code      Code
	URL       string
	CreatedAt time.Time
}

// Expired reports whether the entry has outlived ttl at the given instant.
// An entry exactly ttl old is still live.
func (e Entry) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) > ttl
}
