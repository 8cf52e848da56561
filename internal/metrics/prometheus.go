package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the remote call counters.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors of the assistant. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Remote model calls
	ChatRequests     *prometheus.CounterVec
	SpeechRequests   *prometheus.CounterVec
	RemoteDuration   *prometheus.HistogramVec
	SourcesPerAnswer prometheus.Histogram
	TokensUsed       *prometheus.CounterVec

	// Audio
	DecodedFrames prometheus.Counter

	// Sessions
	ActiveSessions prometheus.Gauge

	// HTTP API
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ChatRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sofia_chat_requests_total",
			Help: "Total number of chat requests by outcome",
		}, []string{"outcome"}),
		SpeechRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sofia_speech_requests_total",
			Help: "Total number of speech synthesis requests by outcome",
		}, []string{"outcome"}),
		RemoteDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sofia_remote_request_duration_seconds",
			Help:    "Latency of model API calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2 minutes
		}, []string{"kind"}),
		SourcesPerAnswer: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sofia_answer_sources",
			Help:    "Number of web sources attached to an answer",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		TokensUsed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sofia_tokens_total",
			Help: "Tokens consumed by chat requests",
		}, []string{"type"}),
		DecodedFrames: f.NewCounter(prometheus.CounterOpts{
			Name: "sofia_decoded_frames_total",
			Help: "Total number of PCM frames decoded for playback",
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "sofia_active_sessions",
			Help: "Current number of open chat sessions",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sofia_http_requests_total",
			Help: "Total number of HTTP API requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sofia_http_request_duration_seconds",
			Help:    "Duration of HTTP API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

func (m *Metrics) RecordChat(outcome string, elapsed time.Duration, sources int) {
	if m == nil {
		return
	}
	m.ChatRequests.WithLabelValues(outcome).Inc()
	m.RemoteDuration.WithLabelValues("chat").Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		m.SourcesPerAnswer.Observe(float64(sources))
	}
}

func (m *Metrics) RecordTokens(prompt, completion int) {
	if m == nil {
		return
	}
	m.TokensUsed.WithLabelValues("prompt").Add(float64(prompt))
	m.TokensUsed.WithLabelValues("completion").Add(float64(completion))
}

func (m *Metrics) RecordSpeech(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SpeechRequests.WithLabelValues(outcome).Inc()
	m.RemoteDuration.WithLabelValues("speech").Observe(elapsed.Seconds())
}

func (m *Metrics) RecordDecoded(frames int) {
	if m == nil {
		return
	}
	m.DecodedFrames.Add(float64(frames))
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}
