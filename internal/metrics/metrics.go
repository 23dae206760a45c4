package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medibook",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medibook",
			Name:      "booking_transitions_total",
			Help:      "Successful status transitions by target status.",
		},
		[]string{"status"},
	)

	transitionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medibook",
			Name:      "booking_transition_errors_total",
			Help:      "Rejected transitions by reason.",
		},
		[]string{"reason"},
	)

	storeOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medibook",
			Name:      "store_operations_total",
			Help:      "Store operations by backend and operation.",
		},
		[]string{"backend", "op"},
	)

	exportFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medibook",
			Name:      "report_export_failures_total",
			Help:      "Report export jobs that exhausted retries.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, transitions, transitionErrors, storeOps, exportFailures)
	})
}

// IncBookingCreated counts a successfully created booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncTransition counts a persisted transition into status.
func IncTransition(status string) {
	transitions.WithLabelValues(status).Inc()
}

// IncTransitionError counts a rejected transition by reason label.
func IncTransitionError(reason string) {
	transitionErrors.WithLabelValues(reason).Inc()
}

// IncStoreOp counts one store operation against a backend.
func IncStoreOp(backend, op string) {
	storeOps.WithLabelValues(backend, op).Inc()
}

// IncExportFailure counts a report export given up after retries.
func IncExportFailure() {
	exportFailures.Inc()
}
