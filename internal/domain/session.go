package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionUsage accumulates token usage and estimated cost of one session.
type SessionUsage struct {
	Requests         int
	PromptTokens     int
	CompletionTokens int
	Cost             decimal.Decimal
}

// ChatSettings are the persisted per-chat preferences.
type ChatSettings struct {
	ChatID    int64
	Language  Language
	UpdatedAt time.Time
}
