package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/i18n"
	"github.com/set-night/sofia/internal/telegram"
)

func (h *Handler) handleLanguage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	// "/language ru" switches directly
	if _, arg, ok := strings.Cut(update.Message.Text, " "); ok {
		if lang, err := domain.ParseLanguage(arg); err == nil {
			h.switchLanguage(ctx, b, chatID, lang)
			return
		}
	}

	lang := h.language(ctx, chatID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        i18n.For(lang).ChooseLanguage,
		ReplyMarkup: telegram.LanguageKeyboard(lang),
	})
}

func (h *Handler) handleLanguageSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil || cq.Message.Message == nil {
		return
	}
	answerCallback(ctx, b, update, "")

	lang, err := domain.ParseLanguage(strings.TrimPrefix(cq.Data, telegram.CallbackLanguage))
	if err != nil {
		slog.Warn("unknown language in callback", "data", cq.Data)
		return
	}

	msg := cq.Message.Message
	b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: telegram.LanguageKeyboard(lang),
	})
	h.switchLanguage(ctx, b, msg.Chat.ID, lang)
}

func (h *Handler) switchLanguage(ctx context.Context, b *bot.Bot, chatID int64, lang domain.Language) {
	if err := h.sessions.SetLanguage(ctx, chatID, lang); err != nil {
		// The session already uses the new language; only persistence failed.
		slog.Error("save language", "chat_id", chatID, "lang", lang, "error", err)
		h.tgLogger.LogError(err, "save language")
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   i18n.For(lang).LanguageSwitched,
	})
}
