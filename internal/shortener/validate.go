package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

var allowedSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
	"ftp":   {},
	"ftps":  {},
}

// reservedCodes shadow routes served by the API itself.
var reservedCodes = map[string]struct{}{
	"urls":        {},
	"health":      {},
	"metrics":     {},
	"docs":        {},
	"schemas":     {},
	"openapi":     {},
	"shorten-url": {},
}

// ValidateURL checks that raw is an absolute URL with a supported scheme and a host.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidURL, err.Error())
	}

	if !u.IsAbs() {
		return fmt.Errorf("%w: not absolute", ErrInvalidURL)
	}

	if _, ok := allowedSchemes[strings.ToLower(u.Scheme)]; !ok {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Hostname() == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return nil
}

// IsReserved reports whether code would shadow one of the service's own routes.
func IsReserved(code Code) bool {
	_, ok := reservedCodes[strings.ToLower(string(code))]

	return ok
}

// ValidCode reports whether code is a non-empty alphanumeric string.
func ValidCode(code Code) bool {
	if code == "" {
		return false
	}

	for _, c := range code {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}

	return true
}
