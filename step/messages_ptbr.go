package step

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, welcomeTitleKey, "Bem-vindo ao Plateful")
	message.SetString(lang, authTitleKey, "Crie Sua Conta")
	message.SetString(lang, dietaryPreferencesTitleKey, "Preferências Alimentares")
	message.SetString(lang, cookingHabitsTitleKey, "Hábitos de Cozinha")
	message.SetString(lang, inventoryKickstartTitleKey, "Monte Sua Despensa")
	message.SetString(lang, coachIntroTitleKey, "Conheça Seu Coach")
	message.SetString(lang, completionTitleKey, "Tudo Pronto")
	message.SetString(lang, unknownTitleKey, "Integração")
}
