package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/telegram"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/language", bot.MatchTypePrefix, h.handleLanguage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/abilities", bot.MatchTypePrefix, h.handleAbilities)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/send", bot.MatchTypeExact, h.handleSend)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/detach", bot.MatchTypeExact, h.handleDetach)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/usage", bot.MatchTypePrefix, h.handleUsage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/end", bot.MatchTypePrefix, h.handleEnd)

	// Callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackLanguage, bot.MatchTypePrefix, h.handleLanguageSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, telegram.CallbackListen, bot.MatchTypePrefix, h.handleListen)

	// Attachments
	h.bot.RegisterHandlerMatchFunc(isVoice, h.HandleVoice)
	h.bot.RegisterHandlerMatchFunc(isAttachment, h.HandleDocument)

	// Free text goes to the assistant
	h.bot.RegisterHandlerMatchFunc(isQuestion, h.HandleText)
}

func isVoice(update *models.Update) bool {
	return update.Message != nil && (update.Message.Voice != nil || update.Message.Audio != nil)
}

func isAttachment(update *models.Update) bool {
	return update.Message != nil && (update.Message.Document != nil || len(update.Message.Photo) > 0)
}

func isQuestion(update *models.Update) bool {
	if update.Message == nil || update.Message.Text == "" {
		return false
	}
	return !strings.HasPrefix(update.Message.Text, "/")
}

// answerCallback acknowledges a callback query, optionally with a toast.
func answerCallback(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
}
