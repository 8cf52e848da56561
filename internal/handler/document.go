package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/i18n"
	"github.com/set-night/sofia/internal/telegram"
)

// HandleDocument reads an uploaded document or photo into memory. With a
// caption it is sent right away; otherwise it waits for the next question.
func (h *Handler) HandleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	chatID := msg.Chat.ID
	t := i18n.For(h.language(ctx, chatID))

	fileID, name, mimeType := attachmentRef(msg)
	if fileID == "" {
		return
	}

	data, storedName, err := telegram.DownloadFile(ctx, b, fileID)
	if err != nil {
		slog.Error("download attachment", "chat_id", chatID, "error", err)
		if errors.Is(err, telegram.ErrFileTooLarge) {
			telegram.SendText(ctx, b, chatID, t.AttachmentTooBig, nil)
		}
		return
	}
	if name == "" {
		name = storedName
	}

	file := domain.NewAttachedFile(name, mimeType, data)
	if msg.Caption != "" {
		h.submit(ctx, b, chatID, msg.Caption, file)
		return
	}

	h.sessions.Attach(ctx, chatID, file)
	telegram.SendText(ctx, b, chatID, "📎 "+fmt.Sprintf(t.FileAttached, name), nil)
}

// attachmentRef picks the document, or the largest photo size.
func attachmentRef(msg *models.Message) (fileID, name, mimeType string) {
	if msg.Document != nil {
		return msg.Document.FileID, msg.Document.FileName, msg.Document.MimeType
	}
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		return photo.FileID, "photo.jpg", "image/jpeg"
	}
	return "", "", ""
}
