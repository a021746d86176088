package store_test

import (
	"testing"

	"github.com/serroba/url-registry/internal/shortener"
	"github.com/serroba/url-registry/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestListeners_FanOut(t *testing.T) {
	a := &recordingListener{}
	b := &recordingListener{}
	listeners := store.Listeners{a, b}

	entry := shortener.Entry{Code: "abc123", URL: testURL}

	listeners.EntryCreated(entry)
	listeners.EntryReused(entry)
	listeners.EntriesExpired([]shortener.Entry{entry, entry})
	listeners.CodeCollision("abc123")

	for _, l := range []*recordingListener{a, b} {
		assert.Len(t, l.created, 1)
		assert.Len(t, l.reused, 1)
		assert.Len(t, l.expired, 2)
		assert.Equal(t, []shortener.Code{"abc123"}, l.collisions)
	}
}

func TestNopListener(t *testing.T) {
	var l store.Listener = store.NopListener{}

	assert.NotPanics(t, func() {
		l.EntryCreated(shortener.Entry{})
		l.EntryReused(shortener.Entry{})
		l.EntriesExpired(nil)
		l.CodeCollision("")
	})
}
