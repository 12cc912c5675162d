package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	AppointmentOperations  *prometheus.CounterVec
	AppointmentsLastListed prometheus.Gauge

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call more
// than once; tests in several packages rely on that.
func Init() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		AppointmentOperations = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appointments_operations_total",
				Help: "Appointment store operations by outcome.",
			},
			[]string{"operation", "status"}, // status: success, not_found, invalid, error
		)

		AppointmentsLastListed = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "appointments_last_listed",
				Help: "Number of appointments returned by the most recent list call.",
			},
		)
	})
}
