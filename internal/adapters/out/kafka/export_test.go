package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter exposes the writer seam to the external test package.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

func NewOrderChangedPublisherWithWriter(writer MessageWriter, now func() time.Time) *OrderChangedPublisher {
	p := newOrderChangedPublisher(writer)
	p.now = now
	return p
}
