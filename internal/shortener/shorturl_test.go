package shortener_test

import (
	"testing"
	"time"

	"github.com/serroba/url-registry/internal/shortener"
	"github.com/stretchr/testify/assert"
)

func TestEntry_Expired(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	entry := shortener.Entry{Code: "abc123", URL: "https://example.com", CreatedAt: created}
	ttl := 15 * time.Minute

	assert.False(t, entry.Expired(created, ttl))
	assert.False(t, entry.Expired(created.Add(ttl), ttl), "entry exactly ttl old is still live")
	assert.True(t, entry.Expired(created.Add(ttl+time.Nanosecond), ttl))
}
