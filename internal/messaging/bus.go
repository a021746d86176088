package messaging

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// Bus is an in-process pub/sub used for registry lifecycle events.
// Messages published before any subscriber exists are dropped.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates a bus whose subscribers each get a buffered channel of size buffer.
func NewBus(buffer int64, logger *zap.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: buffer},
			NewZapLogger(logger),
		),
	}
}

// Publisher returns the publishing side of the bus.
func (b *Bus) Publisher() message.Publisher {
	return b.pubsub
}

// Subscriber returns the subscribing side of the bus.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Shutdown closes the bus and every subscription channel.
func (b *Bus) Shutdown() error {
	return b.pubsub.Close()
}
