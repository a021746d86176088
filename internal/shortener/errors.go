package shortener

import "errors"

var (
	// ErrNotFound is returned when a code has no live mapping.
	ErrNotFound = errors.New("url not found")

	// ErrInvalidURL is returned for input that is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrGenerationExhausted is returned when no free code could be
	// produced within the configured number of attempts.
	ErrGenerationExhausted = errors.New("code generation exhausted")
)
