package service

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/sofia/internal/metrics"
)

func TestSynthesizeReturnsDecodedPCM(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x80}
	body := `{"candidates": [{"content": {"parts": [{"inlineData": {"mimeType": "audio/L16;codec=pcm;rate=24000", "data": "` +
		base64.StdEncoding.EncodeToString(pcm) + `"}}]}}]}`
	client, captured := fakeGemini(t, http.StatusOK, body)
	svc := NewSpeechService(client, "gemini-2.5-flash-preview-tts", "Kore", nil)

	out := svc.Synthesize(context.Background(), "Dzień dobry")

	assert.Equal(t, pcm, out)

	require.Len(t, *captured, 1)
	req := (*captured)[0]
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash-preview-tts:generateContent", req.Path)
	assert.Equal(t, "Dzień dobry", userParts(t, req.Body)[0].(map[string]any)["text"])

	gen := req.Body["generationConfig"].(map[string]any)
	assert.Equal(t, []any{"AUDIO"}, gen["responseModalities"])
	voice := gen["speechConfig"].(map[string]any)["voiceConfig"].(map[string]any)["prebuiltVoiceConfig"].(map[string]any)
	assert.Equal(t, "Kore", voice["voiceName"])
	assert.NotContains(t, req.Body, "tools")
}

func TestSynthesizeReturnsNilWithoutAudio(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty data", http.StatusOK, `{"candidates": [{"content": {"parts": [{"inlineData": {"data": ""}}]}}]}`},
		{"no inline data", http.StatusOK, `{"candidates": [{"content": {"parts": [{"text": "sorry"}]}}]}`},
		{"no parts", http.StatusOK, `{"candidates": [{"content": {}}]}`},
		{"no candidates", http.StatusOK, `{}`},
		{"bad base64", http.StatusOK, `{"candidates": [{"content": {"parts": [{"inlineData": {"data": "!!!"}}]}}]}`},
		{"server error", http.StatusServiceUnavailable, `{"error": {"message": "overloaded"}}`},
		{"malformed json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := fakeGemini(t, tt.status, tt.body)
			svc := NewSpeechService(client, "tts", "Kore", nil)

			out := svc.Synthesize(context.Background(), "tekst")
			assert.Nil(t, out)
		})
	}
}

func TestSynthesizeRecordsOutcome(t *testing.T) {
	client, _ := fakeGemini(t, http.StatusOK, `{"candidates": [{"content": {"parts": [{"inlineData": {"data": ""}}]}}]}`)
	m := metrics.New(prometheus.NewRegistry())
	svc := NewSpeechService(client, "tts", "Kore", m)

	svc.Synthesize(context.Background(), "tekst")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SpeechRequests.WithLabelValues(metrics.OutcomeEmpty)))
}
