package progress

import (
	"time"

	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/step"
)

// State is the complete onboarding snapshot for one device.
type State struct {
	// CurrentStep is the step currently presented to the user.
	CurrentStep step.Step
	// CompletedSteps holds the steps the user has advanced past. It only
	// grows; reset replaces the snapshot wholesale.
	CompletedSteps step.Set
	// SkippedSteps holds the steps the user explicitly bypassed. A step
	// can be a member of both sets, since a skip still advances.
	SkippedSteps step.Set
	// UserData is the progressively filled record of onboarding answers.
	UserData profile.Draft
	// StartedAt is set once at state creation, UTC.
	StartedAt time.Time
	// Analytics is the event log and its derived figures.
	Analytics Analytics
	// Completed is the terminal flag, true only after the completion
	// transition fired.
	Completed bool
}

// Analytics groups the recorded events and the figures derived from them.
type Analytics struct {
	// SessionID ties the events of one onboarding run together.
	SessionID string
	// StartedAt mirrors the state creation time, UTC.
	StartedAt time.Time
	// Events is the append-only analytics log.
	Events []event.Event
	// CompletionRate is the percentage of catalog steps completed, 0-100.
	CompletionRate float64
	// TimePerStep accumulates how long the user dwelled on each step.
	TimePerStep map[step.Step]time.Duration
}

// New returns the fresh first-run state: Welcome step, empty sets, empty
// log, not completed.
func New(startedAt time.Time, sessionID string) State {
	started := event.Stamp(startedAt)
	return State{
		CurrentStep:    step.Welcome,
		CompletedSteps: step.NewSet(),
		SkippedSteps:   step.NewSet(),
		StartedAt:      started,
		Analytics: Analytics{
			SessionID:   sessionID,
			StartedAt:   started,
			TimePerStep: make(map[step.Step]time.Duration),
		},
	}
}

// CompletionRate computes the completion percentage for a completed set.
func CompletionRate(completed step.Set) float64 {
	return float64(completed.Len()) / float64(step.Count) * 100
}

// Clone returns a deep copy of the state. Reads handed to screens go
// through it so no caller can reach into the machine's snapshot.
func (s State) Clone() State {
	s.CompletedSteps = s.CompletedSteps.Clone()
	s.SkippedSteps = s.SkippedSteps.Clone()
	s.UserData = s.UserData.Clone()
	s.Analytics = s.Analytics.clone()
	return s
}

func (a Analytics) clone() Analytics {
	if a.Events != nil {
		events := make([]event.Event, len(a.Events))
		for i, evt := range a.Events {
			events[i] = evt.Clone()
		}
		a.Events = events
	}
	if a.TimePerStep != nil {
		times := make(map[step.Step]time.Duration, len(a.TimePerStep))
		for s, d := range a.TimePerStep {
			times[s] = d
		}
		a.TimePerStep = times
	}
	return a
}
