package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/url-registry/internal/messaging"
	"go.uber.org/zap"
)

// AuditLog writes every lifecycle event to the log.
type AuditLog struct {
	logger *zap.Logger
}

// NewAuditLog creates an audit log handler.
func NewAuditLog(logger *zap.Logger) *AuditLog {
	return &AuditLog{logger: logger.Named("audit")}
}

func (a *AuditLog) EntryCreated(_ context.Context, event *EntryCreatedEvent) error {
	a.logger.Info("entry created",
		zap.String("code", event.Code),
		zap.String("url", event.URL),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (a *AuditLog) EntriesExpired(_ context.Context, event *EntriesExpiredEvent) error {
	a.logger.Info("entries expired",
		zap.Strings("codes", event.Codes),
		zap.Time("sweptAt", event.SweptAt),
	)

	return nil
}

// Consumers returns one consumer per topic, all feeding the audit log.
func (a *AuditLog) Consumers(sub message.Subscriber, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[EntryCreatedEvent](sub, TopicEntryCreated, a.EntryCreated, logger),
		messaging.NewConsumer[EntriesExpiredEvent](sub, TopicEntriesExpired, a.EntriesExpired, logger),
	}
}
