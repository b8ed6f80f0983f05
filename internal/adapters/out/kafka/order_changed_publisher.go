// Package kafka publishes order change events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// OrderChangedEventType is the eventType of every message written by OrderChangedPublisher.
const OrderChangedEventType = "OrderChanged"

// OrderChangedEvent is the JSON payload of an order change message.
type OrderChangedEvent struct {
	EventID    string        `json:"eventId"`
	EventType  string        `json:"eventType"`
	OccurredAt time.Time     `json:"occurredAt"`
	Summary    order.Summary `json:"summary"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderChangedPublisher implements ports.OrderChangeListener by writing one
// OrderChangedEvent per committed order, keyed by order id so that events of
// one order keep their order within a partition.
type OrderChangedPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewOrderChangedPublisher creates a synchronous publisher for topic on brokers.
func NewOrderChangedPublisher(brokers []string, topic string) *OrderChangedPublisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
		MaxAttempts:  3,
		Transport: &kafkago.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafkago.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		AllowAutoTopicCreation: true,
	}

	return newOrderChangedPublisher(writer)
}

func newOrderChangedPublisher(writer messageWriter) *OrderChangedPublisher {
	return &OrderChangedPublisher{
		writer: writer,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// OrderChanged publishes the summary of changed.
func (p *OrderChangedPublisher) OrderChanged(ctx context.Context, changed *order.Order) error {
	summary, err := changed.Summary()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(OrderChangedEvent{
		EventID:    uuid.NewString(),
		EventType:  OrderChangedEventType,
		OccurredAt: p.now(),
		Summary:    summary,
	})
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(summary.OrderID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "eventType", Value: []byte(OrderChangedEventType)},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s for order %s: %w", OrderChangedEventType, summary.OrderID, err)
	}

	return nil
}

// Close flushes pending messages and releases the writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
