// Package kafka consumes page visits from a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/marksort/pkg/utils"
	"github.com/papercomputeco/marksort/pkg/visit"
)

const (
	sourceName = "kafka"

	// maxLoggedValue bounds how much of a malformed payload is logged.
	maxLoggedValue = 120
)

// messageReader is the subset of *kafkago.Reader the source uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Config configures a Kafka visit source.
type Config struct {
	Brokers []string
	Topic   string

	// GroupID is the consumer group. Offsets are committed after each
	// message is handed off.
	GroupID string

	Logger *slog.Logger
}

// Source reads visit payloads from a Kafka topic.
type Source struct {
	reader messageReader
	logger *slog.Logger
}

// NewSource creates a Source backed by a kafka-go consumer group reader.
func NewSource(c Config) (*Source, error) {
	if len(c.Brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	if c.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	if c.GroupID == "" {
		c.GroupID = "marksort"
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  c.Brokers,
		Topic:    c.Topic,
		GroupID:  c.GroupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})

	return newSource(r, c.Logger), nil
}

func newSource(r messageReader, logger *slog.Logger) *Source {
	return &Source{reader: r, logger: logger}
}

// Run fetches messages until ctx is done. Malformed payloads are logged and
// committed so they are not redelivered.
func (s *Source) Run(ctx context.Context, h visit.Handler) error {
	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("fetching visit message: %w", err)
		}

		v, err := visit.Parse(msg.Value, sourceName)
		if err != nil {
			s.logger.Warn("dropping malformed visit message",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset,
				"value", utils.Truncate(string(msg.Value), maxLoggedValue), "error", err)
		} else {
			h(v)
		}

		if err := s.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("committing visit message: %w", err)
		}
	}
}

// Close closes the underlying reader.
func (s *Source) Close() error {
	return s.reader.Close()
}
