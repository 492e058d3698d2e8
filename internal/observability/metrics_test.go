package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/department", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/department", "GET", 200, 20*time.Millisecond)
	m.RecordRequest("/department/:id", "GET", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/department", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/department/:id", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestTime))
}

func TestMetricsRecordError(t *testing.T) {
	m := NewMetrics()
	m.RecordError("/department", "POST", "VALIDATION_FAILED")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorCount.WithLabelValues("POST", "/department", "VALIDATION_FAILED")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/x", "GET", 200, time.Millisecond)
		m.RecordError("/x", "GET", "NOT_FOUND")
	})
}
