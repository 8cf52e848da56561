package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/sofia/internal/service"
)

type ctxKey string

const SessionKey ctxKey = "session"

// GetSession extracts the session snapshot loaded for the update.
func GetSession(ctx context.Context) *service.Session {
	s, ok := ctx.Value(SessionKey).(*service.Session)
	if !ok {
		return nil
	}
	return s
}

// SessionLoader returns middleware that opens the chat's session and puts a
// snapshot of it into the context.
func SessionLoader(sessions *service.SessionService) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			info := Describe(update)
			if info.ChatID == 0 {
				next(ctx, b, update)
				return
			}

			sess := sessions.Open(ctx, info.ChatID)
			ctx = context.WithValue(ctx, SessionKey, &sess)
			next(ctx, b, update)
		}
	}
}
