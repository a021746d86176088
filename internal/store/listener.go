package store

import "github.com/serroba/url-registry/internal/shortener"

// Listener observes registry mutations. Callbacks run after the registry
// lock is released and must not block for long.
type Listener interface {
	EntryCreated(entry shortener.Entry)
	EntryReused(entry shortener.Entry)
	EntriesExpired(entries []shortener.Entry)
	CodeCollision(code shortener.Code)
}

// Listeners fans every callback out to each listener in order.
type Listeners []Listener

func (ls Listeners) EntryCreated(entry shortener.Entry) {
	for _, l := range ls {
		l.EntryCreated(entry)
	}
}

func (ls Listeners) EntryReused(entry shortener.Entry) {
	for _, l := range ls {
		l.EntryReused(entry)
	}
}

func (ls Listeners) EntriesExpired(entries []shortener.Entry) {
	for _, l := range ls {
		l.EntriesExpired(entries)
	}
}

func (ls Listeners) CodeCollision(code shortener.Code) {
	for _, l := range ls {
		l.CodeCollision(code)
	}
}

// NopListener ignores every notification. Embed it to implement only part of Listener.
type NopListener struct{}

func (NopListener) EntryCreated(shortener.Entry)     {}
func (NopListener) EntryReused(shortener.Entry)      {}
func (NopListener) EntriesExpired([]shortener.Entry) {}
func (NopListener) CodeCollision(shortener.Code)     {}
