package middleware

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		update *models.Update
		want   UpdateInfo
	}{
		{
			name:   "text",
			update: &models.Update{Message: &models.Message{Chat: models.Chat{ID: 1}, From: &models.User{ID: 2}, Text: "hi"}},
			want:   UpdateInfo{Kind: "message", ChatID: 1, UserID: 2},
		},
		{
			name:   "voice",
			update: &models.Update{Message: &models.Message{Chat: models.Chat{ID: 1}, Voice: &models.Voice{FileID: "v"}}},
			want:   UpdateInfo{Kind: "voice", ChatID: 1},
		},
		{
			name:   "document",
			update: &models.Update{Message: &models.Message{Chat: models.Chat{ID: 1}, Document: &models.Document{FileID: "d"}}},
			want:   UpdateInfo{Kind: "document", ChatID: 1},
		},
		{
			name: "callback",
			update: &models.Update{CallbackQuery: &models.CallbackQuery{
				From:    models.User{ID: 5},
				Message: models.MaybeInaccessibleMessage{Message: &models.Message{Chat: models.Chat{ID: 9}}},
			}},
			want: UpdateInfo{Kind: "callback_query", ChatID: 9, UserID: 5},
		},
		{
			name:   "other",
			update: &models.Update{},
			want:   UpdateInfo{Kind: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.update))
		})
	}
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
	assert.True(t, l.firstOverLimit(1))
	assert.False(t, l.Allow(1))
	assert.False(t, l.firstOverLimit(1))

	assert.True(t, l.Allow(2), "limits are per chat")

	now = now.Add(time.Minute)
	assert.True(t, l.Allow(1), "window resets")
}
