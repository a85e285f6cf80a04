package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for validation runs.
const (
	OutcomePassed   = "passed"
	OutcomeWarnings = "warnings"
	OutcomeErrors   = "errors"
	OutcomeSkipped  = "skipped"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	// Runs by document type and overall outcome
	Validations *prometheus.CounterVec

	// Failed checks by test id and severity
	CheckFailures *prometheus.CounterVec

	ValidateLatency prometheus.Histogram

	// Store latency by operation and backend
	StoreLatency *prometheus.HistogramVec

	PublishFailures prometheus.Counter
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the validation metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_validations_total",
			Help: "Validation runs by document type and outcome",
		}, []string{"document_type", "outcome"}),

		CheckFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_check_failures_total",
			Help: "Failed checks by test id and severity",
		}, []string{"test", "severity"}),

		ValidateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "idcheck_validate_duration_seconds",
			Help:    "Duration of one validation run",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),

		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idcheck_store_operation_duration_seconds",
			Help:    "Duration of validation record store operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"operation"}),

		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "idcheck_event_publish_failures_total",
			Help: "Validation events that could not be published",
		}),
	}
}

// IncrementValidation records one run.
func (m *Metrics) IncrementValidation(documentType, outcome string) {
	if m != nil {
		m.Validations.WithLabelValues(documentType, outcome).Inc()
	}
}

// IncrementCheckFailure records one failed check.
func (m *Metrics) IncrementCheckFailure(testID, severity string) {
	if m != nil {
		m.CheckFailures.WithLabelValues(testID, severity).Inc()
	}
}

// ObserveValidateLatency records the duration of one run.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// ObserveStoreLatency records the duration of a store operation.
func (m *Metrics) ObserveStoreLatency(operation string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementPublishFailure records a dropped event.
func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}
