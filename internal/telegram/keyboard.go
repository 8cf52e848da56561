package telegram

import (
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/i18n"
)

// Callback data prefixes.
const (
	CallbackListen   = "listen_"
	CallbackLanguage = "lang_"
)

// InlineButton creates a single inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// ListenKeyboard carries the play button of one assistant message.
func ListenKeyboard(lang domain.Language, messageID string) *models.InlineKeyboardMarkup {
	return InlineKeyboard(ButtonRow(
		InlineButton("🔊 "+i18n.For(lang).Listen, CallbackListen+messageID),
	))
}

// LanguageKeyboard offers every supported language, marking the current one.
func LanguageKeyboard(current domain.Language) *models.InlineKeyboardMarkup {
	row := make([]models.InlineKeyboardButton, 0, len(domain.Languages))
	for _, lang := range domain.Languages {
		label := i18n.LanguageLabel(lang)
		if lang == current {
			label = "✅ " + label
		}
		row = append(row, InlineButton(label, CallbackLanguage+string(lang)))
	}
	return InlineKeyboard(row)
}
