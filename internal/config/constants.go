package config

import "time"

const (
	// Speech output format
	SpeechSampleRate = 24000
	SpeechChannels   = 1

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Remote request timeout
	RequestTimeout = 90 * time.Second

	// Idle session sweep interval
	SessionCleanupInterval = 60 * time.Second

	// Voice recordings are attached under a fixed name
	VoiceFileName = "VoiceMessage.ogg"
	VoiceMimeType = "audio/ogg"

	// Prompt used when a file is sent without text
	DefaultFilePrompt = "Analyze the attached file."

	// Upper bound for uploaded files read into memory
	MaxAttachmentSize = 20 << 20

	// Messages accepted per chat per minute
	RateLimitPerMinute = 10

	// Shutdown grace period for the HTTP server
	ShutdownTimeout = 10 * time.Second

	LogFormatJSON   = "json"
	LogFormatPretty = "pretty"
)
