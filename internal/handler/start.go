package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/i18n"
	"github.com/set-night/sofia/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	lang := h.language(ctx, chatID)
	t := i18n.For(lang)

	text := fmt.Sprintf("👋 *%s*\n\n%s\n\n%s\n\n"+
		"/abilities — %s\n"+
		"/language — PL / RU\n"+
		"/end — ⏹",
		t.Header, t.Welcome, t.LegalNotice, t.WhatICanDo)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: telegram.LanguageKeyboard(lang),
	})
}

func (h *Handler) handleAbilities(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      abilitiesText(h.language(ctx, chatID)),
		ParseMode: models.ParseModeHTML,
	})
}

func abilitiesText(lang domain.Language) string {
	t := i18n.For(lang)

	var sb strings.Builder
	sb.WriteString("<b>" + t.WhatICanDo + "</b>\n\n")
	for _, c := range t.Capabilities {
		sb.WriteString("✅ " + c + "\n")
	}
	sb.WriteString("\n<i>" + t.Consultation + "</i>")
	return sb.String()
}
