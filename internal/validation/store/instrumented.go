package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"idcheck/internal/validation/metrics"
)

// Instrumented records the latency of every operation on the wrapped store.
type Instrumented struct {
	next    Store
	metrics *metrics.Metrics
}

// WithMetrics wraps s. A nil m disables recording.
func WithMetrics(s Store, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: s, metrics: m}
}

func (i *Instrumented) Save(ctx context.Context, record Record) error {
	start := time.Now()
	defer func() { i.metrics.ObserveStoreLatency("save", time.Since(start)) }()
	return i.next.Save(ctx, record)
}

func (i *Instrumented) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	start := time.Now()
	defer func() { i.metrics.ObserveStoreLatency("find", time.Since(start)) }()
	return i.next.Find(ctx, id)
}

func (i *Instrumented) Health(ctx context.Context) error {
	return i.next.Health(ctx)
}
