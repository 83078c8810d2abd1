// Package profile holds the user answers collected during onboarding.
//
// The draft fills in progressively: each screen contributes a patch that is
// shallow-merged into the snapshot's copy. All fields are optional and the
// persisted JSON omits whatever was never answered or later cleared.
package profile

import "strings"

// AuthMethod is the sign-in mechanism the user chose on the auth step.
type AuthMethod string

const (
	AuthMethodEmail     AuthMethod = "email"
	AuthMethodApple     AuthMethod = "apple"
	AuthMethodGoogle    AuthMethod = "google"
	AuthMethodAnonymous AuthMethod = "anonymous"
)

// IsValid reports whether m is a known auth method.
func (m AuthMethod) IsValid() bool {
	switch m {
	case AuthMethodEmail, AuthMethodApple, AuthMethodGoogle, AuthMethodAnonymous:
		return true
	default:
		return false
	}
}

// ParseAuthMethod reads a raw auth method string case-insensitively. The
// second return is false when the value is not a known method.
func ParseAuthMethod(raw string) (AuthMethod, bool) {
	m := AuthMethod(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", false
	}
	return m, true
}

// HealthGoal is the outcome the user wants Plateful to steer toward.
type HealthGoal string

const (
	HealthGoalLoseWeight   HealthGoal = "lose_weight"
	HealthGoalMaintain     HealthGoal = "maintain_weight"
	HealthGoalGainMuscle   HealthGoal = "gain_muscle"
	HealthGoalEatHealthier HealthGoal = "eat_healthier"
)

// IsValid reports whether g is a known health goal.
func (g HealthGoal) IsValid() bool {
	switch g {
	case HealthGoalLoseWeight, HealthGoalMaintain, HealthGoalGainMuscle, HealthGoalEatHealthier:
		return true
	default:
		return false
	}
}

// ParseHealthGoal reads a raw health goal string case-insensitively. The
// second return is false when the value is not a known goal.
func ParseHealthGoal(raw string) (HealthGoal, bool) {
	g := HealthGoal(strings.ToLower(strings.TrimSpace(raw)))
	if !g.IsValid() {
		return "", false
	}
	return g, true
}

// WeightBased reports whether g needs a target weight to make sense.
func (g HealthGoal) WeightBased() bool {
	return g == HealthGoalLoseWeight || g == HealthGoalGainMuscle
}

// CookingSkill is the user's self-reported kitchen experience.
type CookingSkill string

const (
	CookingSkillBeginner     CookingSkill = "beginner"
	CookingSkillIntermediate CookingSkill = "intermediate"
	CookingSkillAdvanced     CookingSkill = "advanced"
)

// IsValid reports whether s is a known cooking skill.
func (s CookingSkill) IsValid() bool {
	switch s {
	case CookingSkillBeginner, CookingSkillIntermediate, CookingSkillAdvanced:
		return true
	default:
		return false
	}
}

// ParseCookingSkill reads a raw cooking skill string case-insensitively. The
// second return is false when the value is not a known skill.
func ParseCookingSkill(raw string) (CookingSkill, bool) {
	s := CookingSkill(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", false
	}
	return s, true
}

// Draft is the partial, progressively-filled record of onboarding answers.
// The zero value is a blank draft.
type Draft struct {
	AuthMethod          AuthMethod   `json:"authMethod,omitempty"`
	DietaryRestrictions []string     `json:"dietaryRestrictions,omitempty"`
	Allergies           []string     `json:"allergies,omitempty"`
	HealthGoal          HealthGoal   `json:"healthGoal,omitempty"`
	TargetWeightKg      *float64     `json:"targetWeightKg,omitempty"`
	CookingSkill        CookingSkill `json:"cookingSkill,omitempty"`
	MealsPerWeek        *int         `json:"mealsPerWeek,omitempty"`
	InventoryItems      []string     `json:"inventoryItems,omitempty"`
}

// Clone returns a copy of the draft with independent slices and pointers.
func (d Draft) Clone() Draft {
	d.DietaryRestrictions = cloneList(d.DietaryRestrictions)
	d.Allergies = cloneList(d.Allergies)
	d.InventoryItems = cloneList(d.InventoryItems)
	if d.TargetWeightKg != nil {
		weight := *d.TargetWeightKg
		d.TargetWeightKg = &weight
	}
	if d.MealsPerWeek != nil {
		meals := *d.MealsPerWeek
		d.MealsPerWeek = &meals
	}
	return d
}

func cloneList(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
