package analytics

import (
	"testing"

	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/step"
)

type captureTracker struct {
	events []event.Event
}

func (c *captureTracker) Track(evt event.Event) {
	c.events = append(c.events, evt)
}

func TestOptionSelectedBuildsPayload(t *testing.T) {
	tracker := &captureTracker{}
	recorder := NewRecorder(tracker)

	recorder.OptionSelected(step.DietaryPreferences, "restriction", "vegan")

	if len(tracker.events) != 1 {
		t.Fatalf("tracked events = %d, want 1", len(tracker.events))
	}
	evt := tracker.events[0]
	if evt.Type != event.TypeOptionSelected {
		t.Fatalf("type = %q, want %q", evt.Type, event.TypeOptionSelected)
	}
	if evt.Step != step.DietaryPreferences {
		t.Fatalf("step = %v, want %v", evt.Step, step.DietaryPreferences)
	}
	if evt.Data[event.KeyOption] != "restriction" {
		t.Fatalf("option = %v, want restriction", evt.Data[event.KeyOption])
	}
	if evt.Data[event.KeyValue] != "vegan" {
		t.Fatalf("value = %v, want vegan", evt.Data[event.KeyValue])
	}
	if !evt.Timestamp.IsZero() {
		t.Fatal("recorder stamped the event; stamping belongs to the machine")
	}
}

func TestAuthMethodChosen(t *testing.T) {
	tracker := &captureTracker{}
	NewRecorder(tracker).AuthMethodChosen(profile.AuthMethodApple)

	evt := tracker.events[0]
	if evt.Step != step.Auth {
		t.Fatalf("step = %v, want %v", evt.Step, step.Auth)
	}
	if evt.Data[event.KeyOption] != "authMethod" {
		t.Fatalf("option = %v, want authMethod", evt.Data[event.KeyOption])
	}
	if evt.Data[event.KeyValue] != "apple" {
		t.Fatalf("value = %v, want apple", evt.Data[event.KeyValue])
	}
}

func TestHealthGoalSetOmitsAbsentWeight(t *testing.T) {
	tracker := &captureTracker{}
	recorder := NewRecorder(tracker)

	recorder.HealthGoalSet(profile.HealthGoalEatHealthier, nil)
	weight := 72.5
	recorder.HealthGoalSet(profile.HealthGoalLoseWeight, &weight)

	first, ok := tracker.events[0].Data[event.KeyValue].(map[string]any)
	if !ok {
		t.Fatalf("value type = %T, want map", tracker.events[0].Data[event.KeyValue])
	}
	if _, present := first["targetWeightKg"]; present {
		t.Fatal("absent target weight appeared in payload")
	}
	second := tracker.events[1].Data[event.KeyValue].(map[string]any)
	if second["targetWeightKg"] != 72.5 {
		t.Fatalf("target weight = %v, want 72.5", second["targetWeightKg"])
	}
	if second["goal"] != "lose_weight" {
		t.Fatalf("goal = %v, want lose_weight", second["goal"])
	}
}

func TestErrorRecordsWithoutMovingSteps(t *testing.T) {
	tracker := &captureTracker{}
	NewRecorder(tracker).Error(step.Auth, "auth_provider", "network unreachable")

	evt := tracker.events[0]
	if evt.Type != event.TypeErrorOccurred {
		t.Fatalf("type = %q, want %q", evt.Type, event.TypeErrorOccurred)
	}
	if evt.Data[event.KeySource] != "auth_provider" {
		t.Fatalf("source = %v, want auth_provider", evt.Data[event.KeySource])
	}
	if evt.Data[event.KeyMessage] != "network unreachable" {
		t.Fatalf("message = %v, want network unreachable", evt.Data[event.KeyMessage])
	}
}

func TestNilRecorderAndTrackerAreSilent(t *testing.T) {
	var recorder *Recorder
	recorder.StepViewed(step.Welcome)
	recorder.Error(step.Auth, "x", "y")

	withNilTracker := NewRecorder(nil)
	withNilTracker.InventoryKickstarted(4)
	withNilTracker.CoachIntroEngaged("demo_played")
}
