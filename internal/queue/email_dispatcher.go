package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// EmailDispatcher publishes rendered emails to Kafka.
type EmailDispatcher struct {
	writer *kafka.Writer
}

// NewEmailDispatcher constructs a dispatcher for the given topic.
func NewEmailDispatcher(k *Kafka, topic string) *EmailDispatcher {
	return &EmailDispatcher{
		writer: k.NewWriter(topic),
	}
}

// Dispatch writes the email message to Kafka.
func (d *EmailDispatcher) Dispatch(ctx context.Context, msg EmailMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("email dispatcher: marshal message: %w", err)
	}

	record := kafka.Message{
		Key:   msg.ID[:],
		Value: value,
		Time:  time.Now().UTC(),
	}

	if err := d.writer.WriteMessages(ctx, record); err != nil {
		return fmt.Errorf("email dispatcher: write message: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (d *EmailDispatcher) Close() error {
	return d.writer.Close()
}
