// Package testutils holds fakes and fixtures shared by marksort tests.
package testutils

import (
	"context"
	"sync"

	"github.com/papercomputeco/marksort/pkg/eventstream"
)

// MockPublisher is an eventstream.Publisher that records every event.
type MockPublisher struct {
	mu       sync.Mutex
	reorders []*eventstream.ReorderCompletedEvent
	visits   []*eventstream.VisitRecordedEvent

	// Err is returned by every publish call after the event is recorded.
	Err error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (p *MockPublisher) PublishReorder(_ context.Context, e *eventstream.ReorderCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reorders = append(p.reorders, e)
	return p.Err
}

func (p *MockPublisher) PublishVisit(_ context.Context, e *eventstream.VisitRecordedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visits = append(p.visits, e)
	return p.Err
}

func (p *MockPublisher) Close() error { return nil }

// Reorders returns a copy of the recorded reorder events.
func (p *MockPublisher) Reorders() []*eventstream.ReorderCompletedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*eventstream.ReorderCompletedEvent(nil), p.reorders...)
}

// Visits returns a copy of the recorded visit events.
func (p *MockPublisher) Visits() []*eventstream.VisitRecordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*eventstream.VisitRecordedEvent(nil), p.visits...)
}
