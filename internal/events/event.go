package events

import "time"

const (
	TopicEntryCreated   = "registry.entry.created"
	TopicEntriesExpired = "registry.entries.expired"
)

// EntryCreatedEvent is emitted when a URL receives a new code.
type EntryCreatedEvent struct {
	Code      string    `json:"code"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntriesExpiredEvent is emitted once per sweep that removed at least one entry.
type EntriesExpiredEvent struct {
	Codes   []string  `json:"codes"`
	SweptAt time.Time `json:"sweptAt"`
}
