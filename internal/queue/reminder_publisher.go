package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReminderPublisher publishes due-callback reminders to Kafka.
type ReminderPublisher struct {
	writer *kafka.Writer
}

// NewReminderPublisher constructs a publisher for the given topic.
func NewReminderPublisher(k *Kafka, topic string) *ReminderPublisher {
	return &ReminderPublisher{
		writer: k.NewWriter(topic),
	}
}

// Publish writes the reminder message to Kafka.
func (p *ReminderPublisher) Publish(ctx context.Context, msg ReminderMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("reminder publisher: marshal message: %w", err)
	}

	record := kafka.Message{
		Key:   msg.ContactID[:],
		Value: value,
		Time:  time.Now().UTC(),
	}

	if err := p.writer.WriteMessages(ctx, record); err != nil {
		return fmt.Errorf("reminder publisher: write message: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (p *ReminderPublisher) Close() error {
	return p.writer.Close()
}
