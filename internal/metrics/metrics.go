package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics bundles the Prometheus collectors exposed on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	// InvoicesCreated counts successfully created gateway invoices.
	InvoicesCreated prometheus.Counter
	// NotificationOutcomes counts processed notifications by outcome
	// (paid, cancelled, rejected, error).
	NotificationOutcomes *prometheus.CounterVec
	// HTTPDuration records request durations by method, path and status.
	HTTPDuration *prometheus.HistogramVec
}

// Outcome labels for NotificationOutcomes.
const (
	OutcomePaid      = "paid"
	OutcomeCancelled = "cancelled"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

// New creates a dedicated registry with all service collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		InvoicesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payment_invoices_created_total",
			Help: "Total gateway invoices created.",
		}),
		NotificationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_notifications_total",
			Help: "Processed payment notifications by outcome.",
		}, []string{"outcome"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(m.InvoicesCreated)
	registry.MustRegister(m.NotificationOutcomes)
	registry.MustRegister(m.HTTPDuration)
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}
