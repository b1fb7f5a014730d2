package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter exposes the writer seam to tests.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewPublisherWithWriter builds a Publisher over w.
func NewPublisherWithWriter(w MessageWriter, timeout time.Duration) *Publisher {
	return newPublisher(w, timeout)
}
