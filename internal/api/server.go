// Package api exposes the assistant over a small JSON HTTP API that a browser
// front-end can call.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/set-night/sofia/internal/audio"
	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/domain"
	"github.com/set-night/sofia/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Asker answers one prompt. Implemented by service.ChatService.
type Asker interface {
	Ask(ctx context.Context, prompt string, lang domain.Language, file *domain.InlineFile) domain.Answer
}

// Synthesizer turns text into raw PCM. Implemented by service.SpeechService.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) []byte
}

type Deps struct {
	Chat        Asker
	Speech      Synthesizer
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	DefaultLang domain.Language
}

// Server serves the HTTP API.
type Server struct {
	server      *http.Server
	chat        Asker
	speech      Synthesizer
	metrics     *metrics.Metrics
	gatherer    prometheus.Gatherer
	defaultLang domain.Language
	startTime   time.Time
}

func NewServer(port int, deps Deps) *Server {
	s := &Server{
		chat:        deps.Chat,
		speech:      deps.Speech,
		metrics:     deps.Metrics,
		gatherer:    deps.Gatherer,
		defaultLang: deps.DefaultLang,
		startTime:   time.Now(),
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.defaultLang == "" {
		s.defaultLang = domain.LanguagePL
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: config.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ask", s.withMetrics("/api/ask", s.handleAsk))
	mux.HandleFunc("POST /api/speech", s.withMetrics("/api/speech", s.handleSpeech))
	mux.HandleFunc("GET /healthz", s.withMetrics("/healthz", s.handleHealth))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting http api", "address", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http api: %w", err)
	case <-ctx.Done():
	}

	slog.Info("stopping http api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// withMetrics wraps an HTTP handler with metrics collection
func (s *Server) withMetrics(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(ww, r)

		s.metrics.RecordHTTPRequest(r.Method, endpoint, fmt.Sprintf("%d", ww.statusCode), time.Since(start).Seconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type fileRequest struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type askRequest struct {
	Prompt string       `json:"prompt"`
	Lang   string       `json:"lang"`
	File   *fileRequest `json:"file,omitempty"`
}

type askResponse struct {
	Text     string                   `json:"text"`
	Sources  []domain.GroundingSource `json:"sources"`
	Fallback bool                     `json:"fallback"`
}

type speechRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lang := s.defaultLang
	if req.Lang != "" {
		parsed, err := domain.ParseLanguage(req.Lang)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		lang = parsed
	}

	var file *domain.InlineFile
	if req.File != nil && req.File.Data != "" {
		attached := &domain.AttachedFile{Name: req.File.Name, MimeType: req.File.MimeType, Data: req.File.Data}
		if attached.MimeType == "" {
			if mimeType, _, err := domain.ParseDataURI(attached.Data); err == nil {
				attached.MimeType = mimeType
			}
		}
		file = attached.Inline()
	}

	prompt := req.Prompt
	if strings.TrimSpace(prompt) == "" {
		if file == nil {
			writeError(w, http.StatusBadRequest, domain.ErrEmptySubmission.Error())
			return
		}
		prompt = config.DefaultFilePrompt
	}

	answer := s.chat.Ask(r.Context(), prompt, lang, file)

	sources := answer.Sources
	if sources == nil {
		sources = []domain.GroundingSource{}
	}
	writeJSON(w, http.StatusOK, askResponse{
		Text:     answer.Text,
		Sources:  sources,
		Fallback: answer.IsFallback(),
	})
}

// handleSpeech returns the synthesized text as a WAV file, or 204 when the
// speech endpoint produced no audio.
func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	pcm := s.speech.Synthesize(r.Context(), req.Text)
	if pcm == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	buf, err := audio.Decode(pcm, config.SpeechSampleRate, config.SpeechChannels)
	if err != nil {
		slog.Error("decode speech", "error", err)
		writeError(w, http.StatusInternalServerError, "decode speech")
		return
	}
	s.metrics.RecordDecoded(buf.FrameCount())

	wav, err := audio.EncodeWAV(buf)
	if err != nil {
		slog.Error("encode wav", "error", err)
		writeError(w, http.StatusInternalServerError, "encode speech")
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(wav)))
	w.WriteHeader(http.StatusOK)
	w.Write(wav)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

// decodeBody reads a JSON body limited to what an attachment can occupy as base64.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxAttachmentSize*4/3+64<<10)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
