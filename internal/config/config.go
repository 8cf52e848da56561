package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"

	"github.com/set-night/sofia/internal/domain"
)

type Config struct {
	// Core
	GeminiAPIKey  string `env:"GEMINI_API_KEY,required"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	ChatModel     string `env:"CHAT_MODEL" envDefault:"gemini-3-pro-preview"`
	SpeechModel   string `env:"SPEECH_MODEL" envDefault:"gemini-2.5-flash-preview-tts"`
	SpeechVoice   string `env:"SPEECH_VOICE" envDefault:"Kore"`

	// Telegram
	BotToken           string `env:"BOT_TOKEN"`
	DropPendingUpdates bool   `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Storage: chat settings go to Postgres when set, memory otherwise
	DatabaseURL string `env:"DATABASE_URL"`

	// Server
	Port int `env:"PORT" envDefault:"3000"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Sessions
	DefaultLanguage    string        `env:"DEFAULT_LANGUAGE" envDefault:"PL"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// Pricing per one million tokens (USD)
	PricePromptPerM     string `env:"PRICE_PROMPT_PER_M" envDefault:"2"`
	PriceCompletionPerM string `env:"PRICE_COMPLETION_PER_M" envDefault:"12"`

	// Telegram logging
	LogTelegramChatID int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError     int   `env:"LOG_TOPIC_ERROR"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result error

	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		result = multierror.Append(result, fmt.Errorf("GEMINI_API_KEY: %w", domain.ErrMissingCredential))
	}
	if _, err := domain.ParseLanguage(c.DefaultLanguage); err != nil {
		result = multierror.Append(result, fmt.Errorf("DEFAULT_LANGUAGE: %w", err))
	}
	if c.Port <= 0 || c.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("PORT: out of range: %d", c.Port))
	}
	if c.SessionIdleTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("SESSION_IDLE_TIMEOUT: must be positive"))
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatPretty:
	default:
		result = multierror.Append(result, fmt.Errorf("LOG_FORMAT: unknown format %q", c.LogFormat))
	}
	if _, err := decimal.NewFromString(c.PricePromptPerM); err != nil {
		result = multierror.Append(result, fmt.Errorf("PRICE_PROMPT_PER_M: %w", err))
	}
	if _, err := decimal.NewFromString(c.PriceCompletionPerM); err != nil {
		result = multierror.Append(result, fmt.Errorf("PRICE_COMPLETION_PER_M: %w", err))
	}

	return result
}

// Language returns the configured default session language.
func (c *Config) Language() domain.Language {
	lang, err := domain.ParseLanguage(c.DefaultLanguage)
	if err != nil {
		return domain.LanguagePL
	}
	return lang
}

func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Prices returns the prompt and completion prices per one million tokens.
func (c *Config) Prices() (prompt, completion decimal.Decimal) {
	prompt, _ = decimal.NewFromString(c.PricePromptPerM)
	completion, _ = decimal.NewFromString(c.PriceCompletionPerM)
	return prompt, completion
}
