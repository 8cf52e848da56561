package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/i18n"
	"github.com/set-night/sofia/internal/telegram"
)

// HandleVoice sends a voice recording as an attachment, with the localized
// voice placeholder as the question text.
func (h *Handler) HandleVoice(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	chatID := msg.Chat.ID
	lang := h.language(ctx, chatID)

	fileID := ""
	mimeType := config.VoiceMimeType
	switch {
	case msg.Voice != nil:
		fileID = msg.Voice.FileID
	case msg.Audio != nil:
		fileID = msg.Audio.FileID
		if msg.Audio.MimeType != "" {
			mimeType = msg.Audio.MimeType
		}
	}
	if fileID == "" {
		return
	}

	data, _, err := telegram.DownloadFile(ctx, b, fileID)
	if err != nil {
		slog.Error("download voice", "chat_id", chatID, "error", err)
		telegram.SendText(ctx, b, chatID, i18n.For(lang).VoiceFailed, nil)
		return
	}

	file := domain.NewAttachedFile(config.VoiceFileName, mimeType, data)
	h.submit(ctx, b, chatID, i18n.For(lang).VoicePlaceholder, file)
}
