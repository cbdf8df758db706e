package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types published on the order stream.
const (
	TypeOrderPlaced    = "order.placed"
	TypeOrderCancelled = "order.cancelled"
	TypeOrderStatus    = "order.status-changed"
)

// OrderEvent is the wire shape for every order-related event.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    int       `json:"orderId"`
	OrderRef   string    `json:"orderRef"`
	UserID     int       `json:"userId"`
	Storefront string    `json:"storefront"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher writes order events to Kafka. Publishing is always best effort:
// callers log failures and carry on.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, ev OrderEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderRef),
		Value: data,
		Time:  ev.OccurredAt,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
