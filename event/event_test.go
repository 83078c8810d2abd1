package event

import (
	"testing"
	"time"

	"github.com/plateful/onboarding/step"
)

func TestTypeIsValid(t *testing.T) {
	for _, typ := range Types() {
		if !typ.IsValid() {
			t.Fatalf("type %q reported invalid", typ)
		}
	}
	if Type("screen_rotated").IsValid() {
		t.Fatal("unknown type reported valid")
	}
	if Type("").IsValid() {
		t.Fatal("empty type reported valid")
	}
}

func TestNewStampsUTCMilliseconds(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, 3, 1, 10, 30, 45, 123_456_789, loc)

	evt := New(TypeStepViewed, step.Auth, nil, ts)

	if evt.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp location = %v, want UTC", evt.Timestamp.Location())
	}
	want := time.Date(2026, 3, 1, 8, 30, 45, 123_000_000, time.UTC)
	if !evt.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", evt.Timestamp, want)
	}
	if evt.Type != TypeStepViewed {
		t.Fatalf("type = %q, want %q", evt.Type, TypeStepViewed)
	}
	if evt.Step != step.Auth {
		t.Fatalf("step = %v, want %v", evt.Step, step.Auth)
	}
}

func TestCloneKeepsPayloadIndependent(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	original := New(TypeOptionSelected, step.DietaryPreferences, map[string]any{
		KeyOption: "vegan",
		KeyValue:  true,
	}, now)

	clone := original.Clone()
	clone.Data[KeyOption] = "keto"

	if original.Data[KeyOption] != "vegan" {
		t.Fatalf("original payload option = %v, want vegan", original.Data[KeyOption])
	}
	if clone.Data[KeyValue] != true {
		t.Fatalf("clone payload value = %v, want true", clone.Data[KeyValue])
	}
}

func TestCloneNilPayload(t *testing.T) {
	evt := Event{Type: TypeStepCompleted, Step: step.Welcome}
	clone := evt.Clone()
	if clone.Data != nil {
		t.Fatalf("clone data = %v, want nil", clone.Data)
	}
}
