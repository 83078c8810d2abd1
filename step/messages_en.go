package step

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	welcomeTitleKey            = "onboarding.step.welcome.title"
	authTitleKey               = "onboarding.step.auth.title"
	dietaryPreferencesTitleKey = "onboarding.step.dietary_preferences.title"
	cookingHabitsTitleKey      = "onboarding.step.cooking_habits.title"
	inventoryKickstartTitleKey = "onboarding.step.inventory_kickstart.title"
	coachIntroTitleKey         = "onboarding.step.coach_intro.title"
	completionTitleKey         = "onboarding.step.completion.title"
	unknownTitleKey            = "onboarding.step.unknown.title"
)

func init() {
	lang := language.English

	message.SetString(lang, welcomeTitleKey, "Welcome to Plateful")
	message.SetString(lang, authTitleKey, "Create Your Account")
	message.SetString(lang, dietaryPreferencesTitleKey, "Dietary Preferences")
	message.SetString(lang, cookingHabitsTitleKey, "Cooking Habits")
	message.SetString(lang, inventoryKickstartTitleKey, "Stock Your Pantry")
	message.SetString(lang, coachIntroTitleKey, "Meet Your Coach")
	message.SetString(lang, completionTitleKey, "You're All Set")
	message.SetString(lang, unknownTitleKey, "Onboarding")
}
