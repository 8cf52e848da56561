package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RateLimiter counts messages per chat in fixed one-minute windows.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	counts  map[int64]int
	resetAt time.Time
	now     func() time.Time
}

func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: time.Minute,
		counts: make(map[int64]int),
		now:    time.Now,
	}
}

// Allow records one message and reports whether it is within the limit.
func (l *RateLimiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if !now.Before(l.resetAt) {
		clear(l.counts)
		l.resetAt = now.Add(l.window)
	}

	l.counts[chatID]++
	return l.counts[chatID] <= l.limit
}

// RateLimit returns middleware that drops messages above the per-minute limit.
// notice is sent once, on the first message over the limit.
func RateLimit(limiter *RateLimiter, notice func(chatID int64) string) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages (not callbacks)
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if limiter.Allow(chatID) {
				next(ctx, b, update)
				return
			}

			slog.Debug("rate limited", "chat_id", chatID, "limit", limiter.limit)
			if limiter.firstOverLimit(chatID) {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   notice(chatID),
				})
			}
		}
	}
}

func (l *RateLimiter) firstOverLimit(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[chatID] == l.limit+1
}
