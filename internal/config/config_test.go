package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/sofia/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-3-pro-preview", cfg.ChatModel)
	assert.Equal(t, "gemini-2.5-flash-preview-tts", cfg.SpeechModel)
	assert.Equal(t, "Kore", cfg.SpeechVoice)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, domain.LanguagePL, cfg.Language())
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		GeminiAPIKey:        "  ",
		DefaultLanguage:     "DE",
		Port:                0,
		SessionIdleTimeout:  time.Minute,
		LogFormat:           "xml",
		PricePromptPerM:     "1",
		PriceCompletionPerM: "abc",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
	assert.Contains(t, err.Error(), "PRICE_COMPLETION_PER_M")
	assert.NotContains(t, err.Error(), "PRICE_PROMPT_PER_M")
}

func TestLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	assert.Equal(t, "DEBUG", cfg.Level().String())

	cfg.LogLevel = "nonsense"
	assert.Equal(t, "INFO", cfg.Level().String())
}
