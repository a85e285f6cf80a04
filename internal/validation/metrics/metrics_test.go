package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg)

	m.IncrementValidation("passport", OutcomePassed)
	m.IncrementValidation("passport", OutcomePassed)
	m.IncrementValidation("unknown", OutcomeSkipped)
	m.IncrementCheckFailure("passport.passport_number.present", "error")
	m.IncrementPublishFailure()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Validations.WithLabelValues("passport", OutcomePassed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Validations.WithLabelValues("unknown", OutcomeSkipped)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CheckFailures.WithLabelValues("passport.passport_number.present", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PublishFailures))
}

func TestHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg)

	m.ObserveValidateLatency(200 * time.Microsecond)
	m.ObserveStoreLatency("save", 3*time.Millisecond)
	m.ObserveStoreLatency("find", time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(m.ValidateLatency))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StoreLatency))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "idcheck_validate_duration_seconds")
	assert.Contains(t, names, "idcheck_store_operation_duration_seconds")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementValidation("passport", OutcomeErrors)
		m.IncrementCheckFailure("x", "warning")
		m.ObserveValidateLatency(time.Millisecond)
		m.ObserveStoreLatency("save", time.Millisecond)
		m.IncrementPublishFailure()
	})
}
