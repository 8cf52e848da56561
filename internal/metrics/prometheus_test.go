package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordChat(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordChat(OutcomeOK, time.Second, 3)
	m.RecordChat(OutcomeFallback, time.Second, 0)
	m.RecordChat(OutcomeOK, time.Second, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChatRequests.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChatRequests.WithLabelValues(OutcomeFallback)))
}

func TestRecordTokensAndFrames(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordTokens(10, 5)
	m.RecordTokens(1, 1)
	m.RecordDecoded(24000)

	assert.Equal(t, 11.0, testutil.ToFloat64(m.TokensUsed.WithLabelValues("prompt")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.TokensUsed.WithLabelValues("completion")))
	assert.Equal(t, 24000.0, testutil.ToFloat64(m.DecodedFrames))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordChat(OutcomeOK, time.Second, 1)
		m.RecordSpeech(OutcomeEmpty, time.Second)
		m.RecordTokens(1, 1)
		m.RecordDecoded(1)
		m.SetActiveSessions(2)
		m.RecordHTTPRequest("GET", "/healthz", "200", 0.1)
	})
}
