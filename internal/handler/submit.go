package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/i18n"
	"github.com/set-night/sofia/internal/telegram"
)

// submit sends one user turn to the assistant and delivers the answer with its
// sources and a listen button. file, when non-nil, replaces the pending
// attachment of the session.
func (h *Handler) submit(ctx context.Context, b *bot.Bot, chatID int64, text string, file *domain.AttachedFile) {
	sub, err := h.sessions.Begin(ctx, chatID, text, file)
	if err != nil {
		t := i18n.For(h.language(ctx, chatID))
		switch {
		case errors.Is(err, domain.ErrActiveRequest):
			telegram.SendText(ctx, b, chatID, "⏳ "+t.Busy, nil)
		case errors.Is(err, domain.ErrEmptySubmission):
			telegram.SendText(ctx, b, chatID, t.NothingToSend, nil)
		default:
			slog.Error("begin submission", "chat_id", chatID, "error", err)
		}
		return
	}

	t := i18n.For(sub.Language)

	status, err := telegram.SendText(ctx, b, chatID, "⏳ "+t.Summarizing, nil)
	if err != nil {
		slog.Warn("send status message", "chat_id", chatID, "error", err)
	}
	stopTyping := telegram.StartAction(ctx, b, chatID, models.ChatActionTyping)

	askCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	answer := h.chat.Ask(askCtx, sub.Prompt, sub.Language, sub.File)
	cancel()

	stopTyping()
	if status != nil {
		telegram.DeleteMessage(ctx, b, chatID, status.ID)
	}

	msg := h.sessions.Complete(chatID, answer)
	if answer.IsFallback() {
		h.tgLogger.LogFallback(chatID, sub.Prompt)
	}

	var markup models.ReplyMarkup
	if !answer.IsFallback() {
		markup = telegram.ListenKeyboard(sub.Language, msg.ID)
	}
	footer := telegram.FormatSources(t.Sources, answer.Sources)

	if err := telegram.SendAnswer(ctx, b, chatID, answer.Text, footer, markup); err != nil {
		slog.Error("send answer", "chat_id", chatID, "error", err)
		h.tgLogger.LogError(err, "send answer")
	}
}

// handleSend submits the pending attachment with the default prompt.
func (h *Handler) handleSend(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.submit(ctx, b, update.Message.Chat.ID, "", nil)
}
