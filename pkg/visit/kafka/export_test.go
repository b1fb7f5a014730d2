package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageReader exposes the reader seam to tests.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewSourceWithReader builds a Source over r.
func NewSourceWithReader(r MessageReader, logger *slog.Logger) *Source {
	return newSource(r, logger)
}
