package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler receives decoded request events from Consume.
type Handler func(context.Context, RequestEvent) error

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			// Request traffic is sparse; deliver single events promptly
			// instead of waiting for batches.
			MinBytes:       1,
			MaxBytes:       1 << 20,
			MaxWait:        500 * time.Millisecond,
			CommitInterval: time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume delivers request events to handler until the context is canceled
// or the handler fails. Payloads that do not decode are logged and skipped,
// never redelivered.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeRequestEvent(msg.Value)
		if err != nil {
			log.Printf("skip event at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeRequestEvent(value []byte) (RequestEvent, error) {
	var event RequestEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return RequestEvent{}, fmt.Errorf("decode request event: %w", err)
	}
	if event.RequestID == "" {
		return RequestEvent{}, fmt.Errorf("request event without request_id")
	}
	return event, nil
}
