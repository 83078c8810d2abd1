package persist

import (
	"bytes"
	"testing"
	"time"

	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/progress"
	"github.com/plateful/onboarding/step"
)

var codecStart = time.Date(2026, time.March, 1, 9, 0, 0, 123_000_000, time.UTC)

func clockAt(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestEncodeFreshStatePinsWireShape(t *testing.T) {
	t.Parallel()

	payload, err := Encode(progress.New(codecStart, "session-1"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := `{"currentStep":0,"completedSteps":[],"skippedSteps":[],"userData":{},` +
		`"startTime":"2026-03-01T09:00:00.123Z",` +
		`"analytics":{"sessionId":"session-1","startTime":"2026-03-01T09:00:00.123Z",` +
		`"events":[],"completionRate":0,"timeSpentPerStep":{}},"isCompleted":false}`
	if string(payload) != want {
		t.Fatalf("payload = %s, want %s", payload, want)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	t.Parallel()

	state := walkedState()
	first, err := Encode(state)
	if err != nil {
		t.Fatalf("first encode: %v", err)
	}
	second, err := Encode(state)
	if err != nil {
		t.Fatalf("second encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("encodings differ:\n%s\n%s", first, second)
	}
}

func TestRoundTripPreservesSnapshot(t *testing.T) {
	t.Parallel()

	state := walkedState()
	payload, err := Encode(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.CurrentStep != state.CurrentStep {
		t.Fatalf("current step = %v, want %v", decoded.CurrentStep, state.CurrentStep)
	}
	if !decoded.CompletedSteps.Equal(state.CompletedSteps) {
		t.Fatalf("completed = %v, want %v", decoded.CompletedSteps.Sorted(), state.CompletedSteps.Sorted())
	}
	if !decoded.SkippedSteps.Equal(state.SkippedSteps) {
		t.Fatalf("skipped = %v, want %v", decoded.SkippedSteps.Sorted(), state.SkippedSteps.Sorted())
	}
	if decoded.UserData.HealthGoal != state.UserData.HealthGoal {
		t.Fatalf("health goal = %q, want %q", decoded.UserData.HealthGoal, state.UserData.HealthGoal)
	}
	if decoded.UserData.TargetWeightKg == nil || *decoded.UserData.TargetWeightKg != *state.UserData.TargetWeightKg {
		t.Fatalf("target weight = %v, want %v", decoded.UserData.TargetWeightKg, *state.UserData.TargetWeightKg)
	}
	if !decoded.StartedAt.Equal(state.StartedAt) {
		t.Fatalf("started at = %v, want %v", decoded.StartedAt, state.StartedAt)
	}
	if decoded.Analytics.SessionID != state.Analytics.SessionID {
		t.Fatalf("session id = %q, want %q", decoded.Analytics.SessionID, state.Analytics.SessionID)
	}
	if !decoded.Analytics.StartedAt.Equal(state.Analytics.StartedAt) {
		t.Fatalf("analytics start = %v, want %v", decoded.Analytics.StartedAt, state.Analytics.StartedAt)
	}
	if decoded.Analytics.CompletionRate != state.Analytics.CompletionRate {
		t.Fatalf("completion rate = %v, want %v", decoded.Analytics.CompletionRate, state.Analytics.CompletionRate)
	}

	if len(decoded.Analytics.Events) != len(state.Analytics.Events) {
		t.Fatalf("event count = %d, want %d", len(decoded.Analytics.Events), len(state.Analytics.Events))
	}
	for i, got := range decoded.Analytics.Events {
		want := state.Analytics.Events[i]
		if got.Type != want.Type || got.Step != want.Step {
			t.Fatalf("event %d = (%s, %v), want (%s, %v)", i, got.Type, got.Step, want.Type, want.Step)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Fatalf("event %d timestamp = %v, want %v", i, got.Timestamp, want.Timestamp)
		}
	}

	if len(decoded.Analytics.TimePerStep) != len(state.Analytics.TimePerStep) {
		t.Fatalf("dwell entries = %d, want %d", len(decoded.Analytics.TimePerStep), len(state.Analytics.TimePerStep))
	}
	for s, want := range state.Analytics.TimePerStep {
		if got := decoded.Analytics.TimePerStep[s]; got != want {
			t.Fatalf("dwell[%v] = %v, want %v", s, got, want)
		}
	}
}

func TestDecodeClampsCurrentStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    step.Step
	}{
		{"above range", `{"currentStep":99,"analytics":{}}`, step.Completion},
		{"below range", `{"currentStep":-3,"analytics":{}}`, step.Welcome},
		{"in range", `{"currentStep":4,"analytics":{}}`, step.InventoryKickstart},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			decoded, err := Decode([]byte(tc.payload))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if decoded.CurrentStep != tc.want {
				t.Fatalf("current step = %v, want %v", decoded.CurrentStep, tc.want)
			}
		})
	}
}

func TestDecodeDropsUnrecognizedEvents(t *testing.T) {
	t.Parallel()

	payload := `{"currentStep":1,"analytics":{"events":[` +
		`{"type":"step_viewed","step":1,"timestamp":"2026-03-01T09:00:01.000Z"},` +
		`{"type":"page_loaded","step":1,"timestamp":"2026-03-01T09:00:02.000Z"},` +
		`{"type":"step_completed","step":42,"timestamp":"2026-03-01T09:00:03.000Z"}]}}`

	decoded, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Analytics.Events) != 1 {
		t.Fatalf("event count = %d, want 1", len(decoded.Analytics.Events))
	}
	if decoded.Analytics.Events[0].Type != event.TypeStepViewed {
		t.Fatalf("surviving event = %s, want %s", decoded.Analytics.Events[0].Type, event.TypeStepViewed)
	}
}

func TestDecodeRecomputesCompletionRate(t *testing.T) {
	t.Parallel()

	payload := `{"currentStep":2,"completedSteps":[0,1],"analytics":{"completionRate":88}}`
	decoded, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := progress.CompletionRate(step.NewSet(step.Welcome, step.Auth))
	if decoded.Analytics.CompletionRate != want {
		t.Fatalf("completion rate = %v, want %v", decoded.Analytics.CompletionRate, want)
	}
}

func TestDecodeForcesFullRateWhenCompleted(t *testing.T) {
	t.Parallel()

	payload := `{"currentStep":6,"completedSteps":[0,1,2],"isCompleted":true,"analytics":{"completionRate":42}}`
	decoded, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Analytics.CompletionRate != 100 {
		t.Fatalf("completion rate = %v, want 100", decoded.Analytics.CompletionRate)
	}
}

func TestDecodeDropsInvalidDwellKeys(t *testing.T) {
	t.Parallel()

	payload := `{"currentStep":2,"analytics":{"timeSpentPerStep":{"2":1500,"welcome":900,"99":400}}}`
	decoded, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Analytics.TimePerStep) != 1 {
		t.Fatalf("dwell entries = %d, want 1", len(decoded.Analytics.TimePerStep))
	}
	if got := decoded.Analytics.TimePerStep[step.DietaryPreferences]; got != 1500*time.Millisecond {
		t.Fatalf("dwell = %v, want %v", got, 1500*time.Millisecond)
	}
}

func TestDecodeRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	if _, err := Decode([]byte(`{"currentStep":`)); err == nil {
		t.Fatal("expected decode error")
	}
}

// walkedState runs a few transitions so the snapshot carries events, dwell
// figures, skips, and profile data at once.
func walkedState() progress.State {
	weight := 72.5
	goal := profile.HealthGoalLoseWeight
	method := profile.AuthMethodEmail

	state := progress.New(codecStart, "session-rt")
	state = progress.Apply(state, progress.Advance{}, clockAt(codecStart.Add(2*time.Second)))
	state = progress.Apply(state, progress.Update{Patch: profile.Patch{
		AuthMethod:     &method,
		HealthGoal:     &goal,
		TargetWeightKg: &weight,
	}}, clockAt(codecStart.Add(3*time.Second)))
	state = progress.Apply(state, progress.Advance{}, clockAt(codecStart.Add(5*time.Second)))
	state = progress.Apply(state, progress.Skip{}, clockAt(codecStart.Add(9*time.Second)))
	state = progress.Apply(state, progress.Track{Event: event.New(
		event.TypeOptionSelected,
		step.CookingHabits,
		map[string]any{event.KeyOption: "cookingHabits", event.KeyValue: "beginner"},
		codecStart.Add(11*time.Second),
	)}, clockAt(codecStart.Add(11*time.Second)))
	return state
}
