// Package analytics gives screens a typed vocabulary for recording
// onboarding events without hand-building payloads.
package analytics

import (
	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/step"
)

// Tracker receives finished analytics events. The progression engine
// implements it by dispatching a track transition, which also stamps
// events that carry no timestamp.
type Tracker interface {
	Track(evt event.Event)
}

// Recorder constructs well-typed events and forwards them to a tracker.
// It holds no state of its own and never fails: a nil recorder or a nil
// tracker silently drops events.
type Recorder struct {
	tracker Tracker
}

// NewRecorder creates a recorder that forwards to tracker.
func NewRecorder(tracker Tracker) *Recorder {
	return &Recorder{tracker: tracker}
}

func (r *Recorder) record(evt event.Event) {
	if r == nil || r.tracker == nil {
		return
	}
	r.tracker.Track(evt)
}

// StepViewed records that a step was shown outside the normal advancement
// flow, e.g. the initial render or returning from background.
func (r *Recorder) StepViewed(s step.Step) {
	r.record(event.Event{Type: event.TypeStepViewed, Step: s})
}

// OptionSelected records a single choice made on a step.
func (r *Recorder) OptionSelected(s step.Step, option string, value any) {
	r.record(event.Event{Type: event.TypeOptionSelected, Step: s, Data: map[string]any{
		event.KeyOption: option,
		event.KeyValue:  value,
	}})
}

// AuthMethodChosen records which sign-in mechanism the user picked.
func (r *Recorder) AuthMethodChosen(method profile.AuthMethod) {
	r.OptionSelected(step.Auth, "authMethod", string(method))
}

// DietaryPreferencesSet records the restriction and allergy choices.
func (r *Recorder) DietaryPreferencesSet(restrictions, allergies []string) {
	r.OptionSelected(step.DietaryPreferences, "dietaryPreferences", map[string]any{
		"restrictions": restrictions,
		"allergies":    allergies,
	})
}

// HealthGoalSet records the chosen goal and, when given, the target weight.
func (r *Recorder) HealthGoalSet(goal profile.HealthGoal, targetWeightKg *float64) {
	value := map[string]any{"goal": string(goal)}
	if targetWeightKg != nil {
		value["targetWeightKg"] = *targetWeightKg
	}
	r.OptionSelected(step.DietaryPreferences, "healthGoal", value)
}

// CookingHabitsSet records the self-reported skill and cooking cadence.
func (r *Recorder) CookingHabitsSet(skill profile.CookingSkill, mealsPerWeek *int) {
	value := map[string]any{"skill": string(skill)}
	if mealsPerWeek != nil {
		value["mealsPerWeek"] = *mealsPerWeek
	}
	r.OptionSelected(step.CookingHabits, "cookingHabits", value)
}

// InventoryKickstarted records how many pantry items the user seeded.
func (r *Recorder) InventoryKickstarted(itemCount int) {
	r.OptionSelected(step.InventoryKickstart, "inventoryItems", itemCount)
}

// CoachIntroEngaged records an interaction with the coach demo.
func (r *Recorder) CoachIntroEngaged(interaction string) {
	r.OptionSelected(step.CoachIntro, "coachInteraction", interaction)
}

// Error records a screen-level failure, e.g. an auth call that did not
// go through. It never alters progression: the user stays on the step.
func (r *Recorder) Error(s step.Step, source, message string) {
	r.record(event.Event{Type: event.TypeErrorOccurred, Step: s, Data: map[string]any{
		event.KeySource:  source,
		event.KeyMessage: message,
	}})
}
