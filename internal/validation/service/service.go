// Package service runs validations for the HTTP API: it evaluates an
// extraction result, stores the report, and announces it.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"idcheck/internal/document"
	"idcheck/internal/validation"
	"idcheck/internal/validation/metrics"
	"idcheck/internal/validation/publisher"
	"idcheck/internal/validation/store"
	dErrors "idcheck/pkg/domain-errors"
	"idcheck/pkg/platform/sentinel"
	"idcheck/pkg/requestcontext"
)

const (
	tracerName = "idcheck/internal/validation/service"

	defaultBatchConcurrency = 8
	defaultMaxBatchSize     = 50
	publishTimeout          = 5 * time.Second
)

// Service coordinates the validator with storage and event publication.
type Service struct {
	validator        *validation.Validator
	store            Store
	publisher        Publisher
	metrics          *metrics.Metrics
	logger           *slog.Logger
	tracer           trace.Tracer
	batchConcurrency int
	maxBatchSize     int
	newID            func() uuid.UUID
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the event publisher. The default drops events.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithMetrics enables Prometheus recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithBatchConcurrency bounds how many results of a batch are processed at once.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithMaxBatchSize bounds how many results one batch may carry.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithIDGenerator replaces uuid.New, mostly for tests.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) { s.newID = fn }
}

// New constructs the service.
func New(validator *validation.Validator, st Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		validator:        validator,
		store:            st,
		publisher:        publisher.NoOp{},
		logger:           logger,
		tracer:           otel.Tracer(tracerName),
		batchConcurrency: defaultBatchConcurrency,
		maxBatchSize:     defaultMaxBatchSize,
		newID:            uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBatchSize reports the largest batch ValidateBatch accepts.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// Validate checks result against the request's "now", stores the report and
// publishes a completion event. Only storage failures are returned; the
// validator itself cannot fail.
func (s *Service) Validate(ctx context.Context, result document.ExtractionResult) (*store.Record, error) {
	ctx, span := s.tracer.Start(ctx, "validation.Validate",
		trace.WithAttributes(attribute.String("document_type", string(result.DocumentType))))
	defer span.End()

	requestID := requestcontext.RequestID(ctx)
	now := requestcontext.Now(ctx)

	start := time.Now()
	report := s.validator.ValidateAt(result, now)
	s.metrics.ObserveValidateLatency(time.Since(start))
	s.recordReport(result.DocumentType, report)

	span.SetAttributes(
		attribute.Bool("validation_run", report.ValidationRun),
		attribute.Int("errors", report.Errors),
		attribute.Int("warnings", report.Warnings),
	)

	record := store.Record{
		ID:           s.newID(),
		DocumentType: result.DocumentType,
		ValidatedAt:  now,
		RequestID:    requestID,
		Report:       report,
	}
	if err := s.store.Save(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store validation")
	}

	s.publish(ctx, record)

	s.logger.InfoContext(ctx, "validation completed",
		"request_id", requestID,
		"validation_id", record.ID,
		"document_type", result.DocumentType,
		"validation_run", report.ValidationRun,
		"errors", report.Errors,
		"warnings", report.Warnings,
	)
	return &record, nil
}

// ValidateBatch validates results concurrently and returns the records in
// input order. The first storage failure cancels the rest of the batch.
func (s *Service) ValidateBatch(ctx context.Context, results []document.ExtractionResult) ([]*store.Record, error) {
	if len(results) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "results must not be empty")
	}
	if len(results) > s.maxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, "too many results in batch")
	}

	ctx, span := s.tracer.Start(ctx, "validation.ValidateBatch",
		trace.WithAttributes(attribute.Int("batch_size", len(results))))
	defer span.End()

	records := make([]*store.Record, len(results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, result := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := s.Validate(gctx, result)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch failed")
		if _, ok := dErrors.Is(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "batch validation aborted")
	}
	return records, nil
}

// Get returns a stored validation.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*store.Record, error) {
	ctx, span := s.tracer.Start(ctx, "validation.Get")
	defer span.End()

	record, err := s.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "validation not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load validation")
	}
	return record, nil
}

// Health reports whether the backing store, and the event broker when the
// publisher can be pinged, are reachable.
func (s *Service) Health(ctx context.Context) error {
	if err := s.store.Health(ctx); err != nil {
		return dErrors.Wrap(errors.Join(sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "store unavailable")
	}
	if p, ok := s.publisher.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return dErrors.Wrap(errors.Join(sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "event broker unavailable")
		}
	}
	return nil
}

// DocumentType describes one supported document type for listings.
type DocumentType struct {
	Type            document.Type     `json:"type"`
	Fields          []string          `json:"fields"`
	RequiredFields  []string          `json:"required_fields"`
	RequiresAddress bool              `json:"requires_address"`
	Rules           []validation.Rule `json:"rules"`
}

// DocumentTypes lists every known document type with its checks.
func (s *Service) DocumentTypes() []DocumentType {
	types := document.Types()
	out := make([]DocumentType, 0, len(types))
	for _, t := range types {
		out = append(out, DocumentType{
			Type:            t,
			Fields:          t.Fields(),
			RequiredFields:  t.RequiredFields(),
			RequiresAddress: t.RequiresAddress(),
			Rules:           validation.Rules(t),
		})
	}
	return out
}

// publish never fails the caller; a dropped event is logged and counted.
func (s *Service) publish(ctx context.Context, record store.Record) {
	event := publisher.NewCompletedEvent(record.ID, record.DocumentType, record.ValidatedAt, record.RequestID, record.Report)
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pctx, event); err != nil {
		s.metrics.IncrementPublishFailure()
		s.logger.WarnContext(ctx, "failed to publish validation event",
			"request_id", record.RequestID,
			"validation_id", record.ID,
			"error", err,
		)
	}
}

func (s *Service) recordReport(docType document.Type, report validation.Report) {
	if s.metrics == nil {
		return
	}
	label := string(docType)
	if !docType.IsKnown() {
		label = "unknown"
	}
	s.metrics.IncrementValidation(label, outcomeLabel(report))
	for _, o := range report.ErrorDetails {
		s.metrics.IncrementCheckFailure(o.TestID, string(o.Severity))
	}
	for _, o := range report.WarningDetails {
		s.metrics.IncrementCheckFailure(o.TestID, string(o.Severity))
	}
}

func outcomeLabel(report validation.Report) string {
	switch {
	case !report.ValidationRun:
		return metrics.OutcomeSkipped
	case report.Errors > 0:
		return metrics.OutcomeErrors
	case report.Warnings > 0:
		return metrics.OutcomeWarnings
	}
	return metrics.OutcomePassed
}
