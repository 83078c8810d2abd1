package profile

import (
	"math"
	"strings"
)

// Field names a draft field so a patch can clear it explicitly.
type Field string

const (
	FieldAuthMethod          Field = "authMethod"
	FieldDietaryRestrictions Field = "dietaryRestrictions"
	FieldAllergies           Field = "allergies"
	FieldHealthGoal          Field = "healthGoal"
	FieldTargetWeight        Field = "targetWeightKg"
	FieldCookingSkill        Field = "cookingSkill"
	FieldMealsPerWeek        Field = "mealsPerWeek"
	FieldInventoryItems      Field = "inventoryItems"
)

// IsValid reports whether f names a draft field.
func (f Field) IsValid() bool {
	switch f {
	case FieldAuthMethod, FieldDietaryRestrictions, FieldAllergies, FieldHealthGoal,
		FieldTargetWeight, FieldCookingSkill, FieldMealsPerWeek, FieldInventoryItems:
		return true
	default:
		return false
	}
}

// Patch is a partial update to a draft. Nil fields leave the draft
// untouched; non-nil fields replace wholesale. Clear names fields to reset
// to their zero value, used when a prior answer becomes invalid (e.g. the
// health goal moves away from a weight-based goal).
type Patch struct {
	AuthMethod          *AuthMethod
	DietaryRestrictions []string
	Allergies           []string
	HealthGoal          *HealthGoal
	TargetWeightKg      *float64
	CookingSkill        *CookingSkill
	MealsPerWeek        *int
	InventoryItems      []string
	Clear               []Field
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.AuthMethod == nil &&
		p.DietaryRestrictions == nil &&
		p.Allergies == nil &&
		p.HealthGoal == nil &&
		p.TargetWeightKg == nil &&
		p.CookingSkill == nil &&
		p.MealsPerWeek == nil &&
		p.InventoryItems == nil &&
		len(p.Clear) == 0
}

// Merge returns the draft with the patch applied. Set fields apply first,
// Clear entries last, so an explicit removal always wins. The receiver is
// never mutated.
func (d Draft) Merge(p Patch) Draft {
	next := d.Clone()
	if p.AuthMethod != nil {
		next.AuthMethod = *p.AuthMethod
	}
	if p.DietaryRestrictions != nil {
		next.DietaryRestrictions = cloneList(p.DietaryRestrictions)
	}
	if p.Allergies != nil {
		next.Allergies = cloneList(p.Allergies)
	}
	if p.HealthGoal != nil {
		next.HealthGoal = *p.HealthGoal
	}
	if p.TargetWeightKg != nil {
		weight := *p.TargetWeightKg
		next.TargetWeightKg = &weight
	}
	if p.CookingSkill != nil {
		next.CookingSkill = *p.CookingSkill
	}
	if p.MealsPerWeek != nil {
		meals := *p.MealsPerWeek
		next.MealsPerWeek = &meals
	}
	if p.InventoryItems != nil {
		next.InventoryItems = cloneList(p.InventoryItems)
	}
	for _, field := range p.Clear {
		next = clearField(next, field)
	}
	return next
}

func clearField(d Draft, f Field) Draft {
	switch f {
	case FieldAuthMethod:
		d.AuthMethod = ""
	case FieldDietaryRestrictions:
		d.DietaryRestrictions = nil
	case FieldAllergies:
		d.Allergies = nil
	case FieldHealthGoal:
		d.HealthGoal = ""
	case FieldTargetWeight:
		d.TargetWeightKg = nil
	case FieldCookingSkill:
		d.CookingSkill = ""
	case FieldMealsPerWeek:
		d.MealsPerWeek = nil
	case FieldInventoryItems:
		d.InventoryItems = nil
	}
	return d
}

// NormalizePatch cleans a patch at the screen boundary: list values are
// trimmed, emptied entries dropped and duplicates removed; enum values
// outside the known sets and non-positive measurements are treated as
// absent; unknown Clear entries are dropped. The state machine itself
// applies patches as given.
func NormalizePatch(p Patch) Patch {
	if p.AuthMethod != nil && !p.AuthMethod.IsValid() {
		p.AuthMethod = nil
	}
	if p.HealthGoal != nil && !p.HealthGoal.IsValid() {
		p.HealthGoal = nil
	}
	if p.CookingSkill != nil && !p.CookingSkill.IsValid() {
		p.CookingSkill = nil
	}
	if p.TargetWeightKg != nil {
		weight := *p.TargetWeightKg
		if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			p.TargetWeightKg = nil
		}
	}
	if p.MealsPerWeek != nil && *p.MealsPerWeek < 0 {
		p.MealsPerWeek = nil
	}
	p.DietaryRestrictions = NormalizeList(p.DietaryRestrictions)
	p.Allergies = NormalizeList(p.Allergies)
	p.InventoryItems = NormalizeList(p.InventoryItems)
	if len(p.Clear) > 0 {
		fields := make([]Field, 0, len(p.Clear))
		seen := make(map[Field]struct{}, len(p.Clear))
		for _, field := range p.Clear {
			if !field.IsValid() {
				continue
			}
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			fields = append(fields, field)
		}
		p.Clear = fields
	}
	return p
}

// NormalizeList trims entries, drops empties and removes duplicates while
// preserving first-seen order. A nil slice stays nil so patches keep the
// distinction between "untouched" and "replace with empty".
func NormalizeList(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
