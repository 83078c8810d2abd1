// Package step defines the ordered onboarding step catalog.
//
// The catalog is closed and append-only: persisted snapshots store raw step
// numbers, so existing values must never be renumbered.
package step

// Step identifies one ordered stage of the onboarding flow.
type Step int

const (
	Welcome Step = iota
	Auth
	DietaryPreferences
	CookingHabits
	InventoryKickstart
	CoachIntro
	Completion
)

// Count is the total number of steps in the catalog.
const Count = 7

// Steps returns the catalog in presentation order.
func Steps() []Step {
	return []Step{
		Welcome,
		Auth,
		DietaryPreferences,
		CookingHabits,
		InventoryKickstart,
		CoachIntro,
		Completion,
	}
}

// IsValid reports whether s is a member of the catalog.
func (s Step) IsValid() bool {
	return s >= Welcome && s <= Completion
}

// IsTerminal reports whether s is the final step of the flow.
func (s Step) IsTerminal() bool {
	return s == Completion
}

// Next returns the step that follows s. The terminal step and invalid
// values are returned unchanged.
func (s Step) Next() Step {
	if !s.IsValid() || s.IsTerminal() {
		return s
	}
	return s + 1
}

// Skippable reports whether the catalog allows the user to bypass s.
// Enforcement belongs to the calling screen; the state machine records a
// skip for whatever step it is handed.
func (s Step) Skippable() bool {
	switch s {
	case Auth, Completion:
		return false
	default:
		return s.IsValid()
	}
}

// String returns the stable slug used in logs and analytics payloads.
func (s Step) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case Auth:
		return "auth"
	case DietaryPreferences:
		return "dietary_preferences"
	case CookingHabits:
		return "cooking_habits"
	case InventoryKickstart:
		return "inventory_kickstart"
	case CoachIntro:
		return "coach_intro"
	case Completion:
		return "completion"
	default:
		return "unknown"
	}
}
