package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/url-registry/internal/messaging"
	"github.com/serroba/url-registry/internal/shortener"
	"github.com/serroba/url-registry/internal/store"
	"go.uber.org/zap"
)

// Publisher turns registry notifications into bus messages.
// Publish failures are logged and never reach the caller of the registry.
type Publisher struct {
	store.NopListener

	created messaging.Publish[EntryCreatedEvent]
	expired messaging.Publish[EntriesExpiredEvent]
	now     func() time.Time
	logger  *zap.Logger
}

// NewPublisher creates a publisher writing to pub.
func NewPublisher(pub message.Publisher, now func() time.Time, logger *zap.Logger) *Publisher {
	if now == nil {
		now = time.Now
	}

	return &Publisher{
		created: messaging.NewPublishFunc[EntryCreatedEvent](pub, TopicEntryCreated),
		expired: messaging.NewPublishFunc[EntriesExpiredEvent](pub, TopicEntriesExpired),
		now:     now,
		logger:  logger,
	}
}

func (p *Publisher) EntryCreated(entry shortener.Entry) {
	event := &EntryCreatedEvent{
		Code:      string(entry.Code),
		URL:       entry.URL,
		CreatedAt: entry.CreatedAt,
	}

	if err := p.created(event); err != nil {
		p.logger.Warn("failed to publish entry created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}
}

func (p *Publisher) EntriesExpired(entries []shortener.Entry) {
	codes := make([]string, len(entries))
	for i, entry := range entries {
		codes[i] = string(entry.Code)
	}

	if err := p.expired(&EntriesExpiredEvent{Codes: codes, SweptAt: p.now()}); err != nil {
		p.logger.Warn("failed to publish entries expired event",
			zap.Int("count", len(codes)),
			zap.Error(err),
		)
	}
}

var _ store.Listener = (*Publisher)(nil)
