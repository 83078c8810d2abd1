package persist

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/progress"
	"github.com/plateful/onboarding/step"
)

// timeLayout is RFC 3339 with millisecond precision. Stored times are UTC.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// stateRecord is the stored JSON shape of an onboarding snapshot.
type stateRecord struct {
	CurrentStep    int             `json:"currentStep"`
	CompletedSteps []int           `json:"completedSteps"`
	SkippedSteps   []int           `json:"skippedSteps"`
	UserData       profile.Draft   `json:"userData"`
	StartTime      string          `json:"startTime"`
	Analytics      analyticsRecord `json:"analytics"`
	IsCompleted    bool            `json:"isCompleted"`
}

type analyticsRecord struct {
	SessionID        string           `json:"sessionId"`
	StartTime        string           `json:"startTime"`
	Events           []eventRecord    `json:"events"`
	CompletionRate   float64          `json:"completionRate"`
	TimeSpentPerStep map[string]int64 `json:"timeSpentPerStep"`
}

type eventRecord struct {
	Type      string         `json:"type"`
	Step      int            `json:"step"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// Encode serializes a snapshot into its stored JSON form. Step sets are
// written as sorted step-number arrays, so equal snapshots encode to equal
// bytes.
func Encode(state progress.State) ([]byte, error) {
	record := stateRecord{
		CurrentStep:    int(state.CurrentStep),
		CompletedSteps: stepNumbers(state.CompletedSteps),
		SkippedSteps:   stepNumbers(state.SkippedSteps),
		UserData:       state.UserData,
		StartTime:      formatTime(state.StartedAt),
		Analytics: analyticsRecord{
			SessionID:        state.Analytics.SessionID,
			StartTime:        formatTime(state.Analytics.StartedAt),
			Events:           eventsToRecords(state.Analytics.Events),
			CompletionRate:   state.Analytics.CompletionRate,
			TimeSpentPerStep: dwellToRecord(state.Analytics.TimePerStep),
		},
		IsCompleted: state.Completed,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal onboarding state: %w", err)
	}
	return payload, nil
}

// Decode rebuilds a snapshot from its stored JSON form. Out-of-range current
// steps are clamped, events with unknown types or invalid steps are dropped,
// and the completion rate is recomputed from the completed set so the stored
// figure can never disagree with the membership that defines it.
func Decode(payload []byte) (progress.State, error) {
	var record stateRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return progress.State{}, fmt.Errorf("unmarshal onboarding state: %w", err)
	}

	state := progress.State{
		CurrentStep:    clampStep(record.CurrentStep),
		CompletedSteps: stepSet(record.CompletedSteps),
		SkippedSteps:   stepSet(record.SkippedSteps),
		UserData:       record.UserData,
		StartedAt:      parseTime(record.StartTime),
		Analytics: progress.Analytics{
			SessionID:   record.Analytics.SessionID,
			StartedAt:   parseTime(record.Analytics.StartTime),
			Events:      recordsToEvents(record.Analytics.Events),
			TimePerStep: recordToDwell(record.Analytics.TimeSpentPerStep),
		},
		Completed: record.IsCompleted,
	}

	state.Analytics.CompletionRate = progress.CompletionRate(state.CompletedSteps)
	if state.Completed {
		state.Analytics.CompletionRate = 100
	}
	return state, nil
}

func stepNumbers(set step.Set) []int {
	numbers := make([]int, 0, set.Len())
	for _, s := range set.Sorted() {
		numbers = append(numbers, int(s))
	}
	return numbers
}

func stepSet(numbers []int) step.Set {
	set := step.NewSet()
	for _, n := range numbers {
		if s := step.Step(n); s.IsValid() {
			set = set.Add(s)
		}
	}
	return set
}

func clampStep(n int) step.Step {
	if n < int(step.Welcome) {
		return step.Welcome
	}
	if n > int(step.Completion) {
		return step.Completion
	}
	return step.Step(n)
}

func eventsToRecords(events []event.Event) []eventRecord {
	records := make([]eventRecord, 0, len(events))
	for _, evt := range events {
		records = append(records, eventRecord{
			Type:      string(evt.Type),
			Step:      int(evt.Step),
			Data:      evt.Data,
			Timestamp: formatTime(evt.Timestamp),
		})
	}
	return records
}

func recordsToEvents(records []eventRecord) []event.Event {
	events := make([]event.Event, 0, len(records))
	for _, record := range records {
		if !event.Type(record.Type).IsValid() {
			continue
		}
		if !step.Step(record.Step).IsValid() {
			continue
		}
		events = append(events, event.Event{
			Type:      event.Type(record.Type),
			Step:      step.Step(record.Step),
			Data:      record.Data,
			Timestamp: parseTime(record.Timestamp),
		})
	}
	return events
}

func dwellToRecord(dwell map[step.Step]time.Duration) map[string]int64 {
	record := make(map[string]int64, len(dwell))
	for s, d := range dwell {
		record[strconv.Itoa(int(s))] = d.Milliseconds()
	}
	return record
}

func recordToDwell(record map[string]int64) map[step.Step]time.Duration {
	dwell := make(map[step.Step]time.Duration, len(record))
	for key, millis := range record {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		s := step.Step(n)
		if !s.IsValid() {
			continue
		}
		dwell[s] = time.Duration(millis) * time.Millisecond
	}
	return dwell
}

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return event.Stamp(parsed)
}
