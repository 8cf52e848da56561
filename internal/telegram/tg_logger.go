package telegram

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/config"
)

// TelegramLogger reports notable events to an operator chat.
type TelegramLogger struct {
	bot *bot.Bot
	cfg *config.Config
}

func NewTelegramLogger(b *bot.Bot, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

type LogType string

const (
	LogTypeError    LogType = "error"
	LogTypeFallback LogType = "fallback"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       models.ParseModeHTML,
		MessageThreadID: l.cfg.LogTopicError,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	msg := fmt.Sprintf("❌ <b>Error</b>\n\n<b>Context:</b> %s\n<b>Error:</b> <code>%s</code>\n<b>Time:</b> %s",
		html.EscapeString(context), html.EscapeString(err.Error()), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

// LogFallback reports a chat request that ended with the apology answer.
func (l *TelegramLogger) LogFallback(chatID int64, prompt string) {
	runes := []rune(prompt)
	if len(runes) > 200 {
		prompt = string(runes[:200]) + "…"
	}
	msg := fmt.Sprintf("⚠️ <b>Chat fallback</b>\n\n<b>Chat:</b> <code>%d</code>\n<b>Prompt:</b> %s",
		chatID, html.EscapeString(prompt))
	l.Log(LogTypeFallback, msg)
}
