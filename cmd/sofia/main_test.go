package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/sofia/internal/audio"
)

// fakeGemini answers chat requests with a grounded answer and speech requests
// with a short PCM clip.
func fakeGemini(t *testing.T) *[]string {
	t.Helper()
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		w.Header().Set("Content-Type", "application/json")

		if strings.Contains(r.URL.Path, "tts") {
			pcm := base64.StdEncoding.EncodeToString(make([]byte, 48000))
			fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"audio/L16;rate=24000","data":"%s"}}]}}]}`, pcm)
			return
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"Stawka VAT wynosi 23%."}]},
			"groundingMetadata":{"groundingChunks":[{"web":{"title":"podatki.gov.pl","uri":"https://www.podatki.gov.pl"}}]}}]}`)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_BASE_URL", srv.URL)
	return &bodies
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader("")
	err := app.Run(append([]string{"sofia"}, args...))
	return out.String(), err
}

func TestAskPrintsAnswerAndSources(t *testing.T) {
	bodies := fakeGemini(t)

	out, err := runApp(t, "ask", "--lang", "ru", "Jaka", "jest", "stawka?")
	require.NoError(t, err)

	assert.Equal(t, "Stawka VAT wynosi 23%.\n\n[1] podatki.gov.pl - https://www.podatki.gov.pl\n", out)
	require.Len(t, *bodies, 1)
	assert.Contains(t, (*bodies)[0], `"text":"Jaka jest stawka?"`)
	assert.Contains(t, (*bodies)[0], "Russian")
}

func TestAskWithFileOnly(t *testing.T) {
	bodies := fakeGemini(t)

	path := filepath.Join(t.TempDir(), "faktura.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	_, err := runApp(t, "ask", "--file", path)
	require.NoError(t, err)

	require.Len(t, *bodies, 1)
	assert.Contains(t, (*bodies)[0], `"data":"JVBERi0xLjQ="`)
	assert.Contains(t, (*bodies)[0], `"mimeType":"application/pdf"`)
	assert.Contains(t, (*bodies)[0], "Analyze the attached file.")
}

func TestAskRequiresPrompt(t *testing.T) {
	bodies := fakeGemini(t)

	_, err := runApp(t, "ask")
	assert.ErrorIs(t, err, errNoPrompt)
	assert.Empty(t, *bodies)
}

func TestAskRejectsUnknownLanguage(t *testing.T) {
	fakeGemini(t)

	_, err := runApp(t, "ask", "--lang", "de", "hallo")
	assert.Error(t, err)
}

func TestSpeakWritesWAV(t *testing.T) {
	fakeGemini(t)
	path := filepath.Join(t.TempDir(), "out.wav")

	out, err := runApp(t, "speak", "--out", path, "Dzień dobry")
	require.NoError(t, err)
	assert.Equal(t, path+": 1.00s\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	info, err := audio.ReadWAVInfo(data)
	require.NoError(t, err)
	assert.EqualValues(t, 24000, info.SampleRate)
	assert.InDelta(t, 1.0, info.Duration, 1e-9)
}

func TestMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := runApp(t, "ask", "hello")
	assert.Error(t, err)
}
