package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы попытки бронирования (метка outcome)
const (
	OutcomeCreated       = "created"
	OutcomeSlotFull      = "slot_full"
	OutcomeAlreadyBooked = "already_booked"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены в конфигурации)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	DBConnections       *prometheus.GaugeVec
	BookingsTotal       *prometheus.CounterVec
	ExpiredPurgedTotal  *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре prometheus (его отдаёт promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном регистре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	ns := sanitize(serviceName)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "db_query_duration_seconds",
				Help:      "Database call duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation", "status"},
		),
		DBConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "db_connections",
				Help:      "Database connection pool state",
			},
			[]string{"state"},
		),
		BookingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "bookings_total",
				Help:      "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		ExpiredPurgedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "expired_purged_total",
				Help:      "Expired records removed by the reaper",
			},
			[]string{"entity"},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) RecordDBQuery(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(seconds)
}

func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues("open").Set(float64(open))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) RecordBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordPurged(entity string, count int64) {
	if m == nil || count <= 0 {
		return
	}
	m.ExpiredPurgedTotal.WithLabelValues(entity).Add(float64(count))
}

// sanitize приводит имя сервиса к допустимому namespace prometheus
func sanitize(name string) string {
	name = strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
