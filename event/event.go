// Package event defines the analytics events recorded during onboarding.
//
// Events form an append-only log inside the progression snapshot: entries
// are immutable once appended and the log is never pruned or deduplicated.
package event

import (
	"time"

	"github.com/plateful/onboarding/step"
)

// Type identifies the kind of an analytics event.
type Type string

const (
	TypeStepViewed     Type = "step_viewed"
	TypeStepCompleted  Type = "step_completed"
	TypeStepSkipped    Type = "step_skipped"
	TypeOptionSelected Type = "option_selected"
	TypeErrorOccurred  Type = "error_occurred"
)

// Types returns every known event type.
func Types() []Type {
	return []Type{
		TypeStepViewed,
		TypeStepCompleted,
		TypeStepSkipped,
		TypeOptionSelected,
		TypeErrorOccurred,
	}
}

// IsValid reports whether t is a known event type.
func (t Type) IsValid() bool {
	switch t {
	case TypeStepViewed, TypeStepCompleted, TypeStepSkipped, TypeOptionSelected, TypeErrorOccurred:
		return true
	default:
		return false
	}
}

// Payload keys shared by the reducer and the analytics recorder. The
// values appear verbatim in persisted snapshots.
const (
	KeyFromStep       = "fromStep"
	KeyElapsedMs      = "elapsedMs"
	KeyCompletedSteps = "completedSteps"
	KeySkippedSteps   = "skippedSteps"
	KeyOption         = "option"
	KeyValue          = "value"
	KeySource         = "source"
	KeyMessage        = "message"
	KeySkippable      = "skippable"
)

// Event is one entry in the onboarding analytics log.
type Event struct {
	// Type identifies the kind of the event.
	Type Type
	// Step is the catalog step the event is about.
	Step step.Step
	// Data is an optional JSON-safe payload; nil when the event carries
	// no extra detail.
	Data map[string]any
	// Timestamp is when the event was recorded, UTC.
	Timestamp time.Time
}

// New returns an event stamped with ts at persisted precision.
func New(t Type, s step.Step, data map[string]any, ts time.Time) Event {
	return Event{Type: t, Step: s, Data: data, Timestamp: Stamp(ts)}
}

// Stamp normalizes a timestamp to UTC millisecond precision, the precision
// persisted snapshots keep.
func Stamp(ts time.Time) time.Time {
	return ts.UTC().Truncate(time.Millisecond)
}

// Clone returns a copy of the event with an independent payload map.
func (e Event) Clone() Event {
	if e.Data == nil {
		return e
	}
	data := make(map[string]any, len(e.Data))
	for k, v := range e.Data {
		data[k] = v
	}
	e.Data = data
	return e
}
