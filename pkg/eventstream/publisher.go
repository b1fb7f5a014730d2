package eventstream

import "context"

// Publisher publishes marksort events to an event stream backend.
type Publisher interface {
	PublishReorder(ctx context.Context, event *ReorderCompletedEvent) error
	PublishVisit(ctx context.Context, event *VisitRecordedEvent) error
	Close() error
}
