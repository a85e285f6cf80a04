// Package publisher emits validation.completed events. Events carry counts
// and identifiers only, never extracted field values.
package publisher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"idcheck/internal/document"
	"idcheck/internal/validation"
)

// EventType names the completion event.
const EventType = "validation.completed"

// Event is the payload published after a validation is stored.
type Event struct {
	Type           string        `json:"type"`
	ID             uuid.UUID     `json:"id"`
	DocumentType   document.Type `json:"document_type"`
	ValidationRun  bool          `json:"validation_run"`
	Passed         int           `json:"passed"`
	Failed         int           `json:"failed"`
	Errors         int           `json:"errors"`
	Warnings       int           `json:"warnings"`
	AllTestsPassed bool          `json:"all_tests_passed"`
	ValidatedAt    time.Time     `json:"validated_at"`
	RequestID      string        `json:"request_id,omitempty"`
}

// NewCompletedEvent summarizes report for publication.
func NewCompletedEvent(id uuid.UUID, docType document.Type, validatedAt time.Time, requestID string, report validation.Report) Event {
	return Event{
		Type:           EventType,
		ID:             id,
		DocumentType:   docType,
		ValidationRun:  report.ValidationRun,
		Passed:         report.Passed,
		Failed:         report.Failed,
		Errors:         report.Errors,
		Warnings:       report.Warnings,
		AllTestsPassed: report.AllTestsPassed,
		ValidatedAt:    validatedAt.UTC(),
		RequestID:      requestID,
	}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NoOp drops every event. It is used when no broker is configured.
type NoOp struct{}

func (NoOp) Publish(context.Context, Event) error { return nil }

func (NoOp) Close() {}
