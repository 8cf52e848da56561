package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ErrorReporter receives recovered panics, e.g. the operator log chat.
type ErrorReporter interface {
	LogError(err error, context string)
}

// ReporterFunc adapts a function to an ErrorReporter.
type ReporterFunc func(err error, context string)

func (f ReporterFunc) LogError(err error, context string) { f(err, context) }

// Recover returns middleware that recovers from panics. reporter may be nil.
func Recover(reporter ErrorReporter) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					info := Describe(update)
					slog.Error("panic recovered in handler",
						"panic", r,
						"type", info.Kind,
						"chat_id", info.ChatID,
						"stack", string(debug.Stack()),
					)
					if reporter != nil {
						reporter.LogError(fmt.Errorf("panic: %v", r), fmt.Sprintf("%s in chat %d", info.Kind, info.ChatID))
					}
				}
			}()
			next(ctx, b, update)
		}
	}
}
