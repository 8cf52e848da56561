package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/i18n"
)

func (h *Handler) handleEnd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	t := i18n.For(h.language(ctx, chatID))

	text := t.SessionEnded
	if !h.sessions.End(chatID) {
		text = t.NoSession
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔄 " + text,
	})
}

func (h *Handler) handleDetach(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	t := i18n.For(h.language(ctx, chatID))

	text := t.FileDetached
	if !h.sessions.Detach(chatID) {
		text = t.NothingToSend
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}
