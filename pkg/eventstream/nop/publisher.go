package nop

import (
	"context"

	"github.com/papercomputeco/marksort/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishReorder validates input and otherwise does nothing.
func (p *Publisher) PublishReorder(_ context.Context, event *eventstream.ReorderCompletedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return nil
}

// PublishVisit validates input and otherwise does nothing.
func (p *Publisher) PublishVisit(_ context.Context, event *eventstream.VisitRecordedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
