package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/i18n"
)

func (h *Handler) handleUsage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	t := i18n.For(h.language(ctx, chatID))

	usage, err := h.sessions.Usage(chatID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: t.NoSession})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: "📊 " + fmt.Sprintf(t.UsageSummary,
			usage.Requests, usage.PromptTokens, usage.CompletionTokens, usage.Cost.StringFixed(4)),
	})
}
