package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleText sends a typed question, together with any pending attachment.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.submit(ctx, b, update.Message.Chat.ID, update.Message.Text, nil)
}
