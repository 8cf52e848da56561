package service

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/set-night/sofia/internal/metrics"
)

// SpeechService turns answer text into raw PCM audio.
type SpeechService struct {
	client  *GeminiClient
	model   string
	voice   string
	metrics *metrics.Metrics
}

func NewSpeechService(client *GeminiClient, model, voice string, m *metrics.Metrics) *SpeechService {
	return &SpeechService{client: client, model: model, voice: voice, metrics: m}
}

// Synthesize returns 16-bit little-endian mono PCM at 24 kHz, or nil when no
// audio could be obtained. Failures are logged and never retried.
func (s *SpeechService) Synthesize(ctx context.Context, text string) []byte {
	start := time.Now()

	resp, err := s.client.GenerateContent(ctx, s.model, BuildSpeechRequest(text, s.voice))
	if err != nil {
		slog.Error("speech request failed", "model", s.model, "error", err)
		s.metrics.RecordSpeech(metrics.OutcomeError, time.Since(start))
		return nil
	}

	encoded := speechPayload(resp)
	if encoded == "" {
		slog.Warn("speech response carried no audio", "model", s.model)
		s.metrics.RecordSpeech(metrics.OutcomeEmpty, time.Since(start))
		return nil
	}

	pcm, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(pcm) == 0 {
		slog.Error("speech audio is not valid base64", "model", s.model, "error", err)
		s.metrics.RecordSpeech(metrics.OutcomeError, time.Since(start))
		return nil
	}

	s.metrics.RecordSpeech(metrics.OutcomeOK, time.Since(start))
	slog.Info("speech synthesized", "model", s.model, "bytes", len(pcm), "chars", len([]rune(text)))
	return pcm
}

func BuildSpeechRequest(text, voice string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: text}}}},
		GenerationConfig: &GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &SpeechConfig{
				VoiceConfig: VoiceConfig{
					PrebuiltVoiceConfig: PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}
}

// speechPayload reads the first part of the first candidate only.
func speechPayload(resp *GenerateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].InlineData == nil {
		return ""
	}
	return parts[0].InlineData.Data
}
