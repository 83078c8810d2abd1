package step

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// MatchLocale resolves the best supported tag for the device's preferred
// locales, in preference order. Unparseable entries are ignored; with no
// usable entry the default tag is returned.
func MatchLocale(preferred ...string) language.Tag {
	tags := make([]language.Tag, 0, len(preferred))
	for _, raw := range preferred {
		parsed, err := language.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		tags = append(tags, parsed)
	}
	if len(tags) == 0 {
		return Default()
	}
	matched, _, _ := tagMatcher.Match(tags...)
	return matched
}

// Title returns the localized display title for s. Unsupported languages
// fall back to English.
func (s Step) Title(tag language.Tag) string {
	matched, _, _ := tagMatcher.Match(tag)
	return message.NewPrinter(matched).Sprintf(s.titleKey())
}

func (s Step) titleKey() string {
	switch s {
	case Welcome:
		return welcomeTitleKey
	case Auth:
		return authTitleKey
	case DietaryPreferences:
		return dietaryPreferencesTitleKey
	case CookingHabits:
		return cookingHabitsTitleKey
	case InventoryKickstart:
		return inventoryKickstartTitleKey
	case CoachIntro:
		return coachIntroTitleKey
	case Completion:
		return completionTitleKey
	default:
		return unknownTitleKey
	}
}
