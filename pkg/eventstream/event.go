package eventstream

import (
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/marksort/pkg/reorder"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeReorderCompleted is emitted after a reorder pass finishes.
	EventTypeReorderCompleted = "marksort.reorder.completed"

	// EventTypeVisitRecorded is emitted after a visit was credited to at
	// least one bookmark.
	EventTypeVisitRecorded = "marksort.visit.recorded"
)

// ReorderCompletedEvent is a transport-neutral payload for a finished pass.
type ReorderCompletedEvent struct {
	SchemaVersion int             `json:"schema_version"`
	EventType     string          `json:"event_type"`
	EventID       string          `json:"event_id"`
	EmittedAt     time.Time       `json:"emitted_at"`
	StartedAt     time.Time       `json:"started_at"`
	DurationMs    int64           `json:"duration_ms"`
	Policy        reorder.Policy  `json:"policy"`
	Report        *reorder.Report `json:"report"`
}

// VisitRecordedEvent is a transport-neutral payload for a credited visit.
type VisitRecordedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`
	URL           string    `json:"url"`
	Source        string    `json:"source,omitempty"`
	VisitedAt     time.Time `json:"visited_at"`
	Matched       []string  `json:"matched"`
}

// NewReorderCompletedEvent builds an event for a pass that started at
// startedAt and produced report.
func NewReorderCompletedEvent(policy reorder.Policy, report *reorder.Report, startedAt time.Time) *ReorderCompletedEvent {
	now := time.Now().UTC()
	return &ReorderCompletedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeReorderCompleted,
		EventID:       uuid.NewString(),
		EmittedAt:     now,
		StartedAt:     startedAt.UTC(),
		DurationMs:    now.Sub(startedAt).Milliseconds(),
		Policy:        policy,
		Report:        report,
	}
}

// NewVisitRecordedEvent builds an event for a visit to url that matched the
// given bookmark identities.
func NewVisitRecordedEvent(url, source string, visitedAt time.Time, matched []string) *VisitRecordedEvent {
	return &VisitRecordedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeVisitRecorded,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		URL:           url,
		Source:        source,
		VisitedAt:     visitedAt.UTC(),
		Matched:       matched,
	}
}
