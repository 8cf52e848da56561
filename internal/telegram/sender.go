package telegram

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const MaxMessageLen = 4096

// markdownChunkLen leaves room for the tags added when a chunk becomes HTML.
const markdownChunkLen = 3500

// SendAnswer sends a Markdown answer as one or more HTML messages. The footer
// (already HTML) and the reply markup go with the last message. A chunk that
// Telegram refuses to parse is resent as plain text.
func SendAnswer(ctx context.Context, b *bot.Bot, chatID int64, text, footer string, markup models.ReplyMarkup) error {
	parts := SplitMessage(text, markdownChunkLen)

	for i, part := range parts {
		rendered, err := MarkdownToHTML(part)
		if err != nil || rendered == "" {
			rendered = html.EscapeString(part)
		}

		last := i == len(parts)-1
		if last && footer != "" {
			if utf8.RuneCountInString(rendered)+utf8.RuneCountInString(footer)+2 <= MaxMessageLen {
				rendered += "\n\n" + footer
				footer = ""
			}
		}

		params := &bot.SendMessageParams{
			ChatID:             chatID,
			Text:               rendered,
			ParseMode:          models.ParseModeHTML,
			LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
		}
		if last && footer == "" && markup != nil {
			params.ReplyMarkup = markup
		}

		if _, err := b.SendMessage(ctx, params); err != nil {
			slog.Warn("html send failed, falling back to plain text", "chat_id", chatID, "error", err)
			params.Text = part
			params.ParseMode = ""
			if _, err := b.SendMessage(ctx, params); err != nil {
				return fmt.Errorf("send message: %w", err)
			}
		}
	}

	if footer != "" {
		params := &bot.SendMessageParams{
			ChatID:             chatID,
			Text:               footer,
			ParseMode:          models.ParseModeHTML,
			LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
		}
		if markup != nil {
			params.ReplyMarkup = markup
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("send footer: %w", err)
		}
	}

	return nil
}

// SendText sends a short plain message.
func SendText(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) (*models.Message, error) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	msg, err := b.SendMessage(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

// SendWAV uploads a WAV recording as an audio message.
func SendWAV(ctx context.Context, b *bot.Bot, chatID int64, wav []byte, title string, replyToID int) error {
	params := &bot.SendAudioParams{
		ChatID: chatID,
		Audio: &models.InputFileUpload{
			Filename: "sofia.wav",
			Data:     bytes.NewReader(wav),
		},
		Title:     title,
		Performer: "Sofia",
	}
	if replyToID != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID:                replyToID,
			AllowSendingWithoutReply: true,
		}
	}
	if _, err := b.SendAudio(ctx, params); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	return nil
}

// DeleteMessage removes a status message, ignoring failures.
func DeleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: messageID}); err != nil {
		slog.Debug("delete message failed", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

// StartAction repeats a chat action every 4 seconds until the returned cancel
// function is called.
func StartAction(ctx context.Context, b *bot.Bot, chatID int64, action models.ChatAction) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(4 * time.Second)
		defer ticker.Stop()
		send := func() {
			b.SendChatAction(ctx, &bot.SendChatActionParams{
				ChatID: chatID,
				Action: action,
			})
		}
		send()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				send()
			}
		}
	}()
	return cancel
}
