package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return NewWithRegisterer(prometheus.NewRegistry(), "arena-slots")
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("POST", "/api/v1/users/book-slot", "200", 0.1)
	m.RecordHTTPRequest("POST", "/api/v1/users/book-slot", "200", 0.2)
	m.RecordHTTPRequest("POST", "/api/v1/users/book-slot", "409", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/users/book-slot", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/users/book-slot", "409")))
}

func TestRecordBooking(t *testing.T) {
	m := newTestMetrics()

	m.RecordBooking(OutcomeCreated)
	m.RecordBooking(OutcomeSlotFull)
	m.RecordBooking(OutcomeSlotFull)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingsTotal.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingsTotal.WithLabelValues(OutcomeSlotFull)))
}

func TestRecordPurged_IgnoresZero(t *testing.T) {
	m := newTestMetrics()

	m.RecordPurged("slot", 0)
	m.RecordPurged("booking", 3)

	assert.Equal(t, float64(0), testutil.ToFloat64(m.ExpiredPurgedTotal.WithLabelValues("slot")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ExpiredPurgedTotal.WithLabelValues("booking")))
}

func TestSetDBConnections(t *testing.T) {
	m := newTestMetrics()

	m.SetDBConnections(10, 4, 6)

	assert.Equal(t, float64(4), testutil.ToFloat64(m.DBConnections.WithLabelValues("in_use")))
	assert.Equal(t, float64(6), testutil.ToFloat64(m.DBConnections.WithLabelValues("idle")))
}

func TestNilMetrics_NoPanic(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", "200", 0.1)
		m.RecordDBQuery("query", "ok", 0.1)
		m.SetDBConnections(1, 1, 0)
		m.RecordBooking(OutcomeCreated)
		m.RecordPurged("slot", 1)
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "arena_slots", sanitize("Arena-Slots"))
}
