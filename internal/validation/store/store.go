// Package store keeps validation records so callers can fetch a report again
// by its ID. Records hold the report only; the extraction input is never
// persisted.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"idcheck/internal/document"
	"idcheck/internal/validation"
	"idcheck/pkg/platform/sentinel"
)

// ErrNotFound is returned when no live record has the requested ID.
var ErrNotFound = sentinel.ErrNotFound

// Record is one stored validation.
type Record struct {
	ID           uuid.UUID         `json:"id"`
	DocumentType document.Type     `json:"document_type"`
	ValidatedAt  time.Time         `json:"validated_at"`
	RequestID    string            `json:"request_id,omitempty"`
	Report       validation.Report `json:"report"`
}

// Store persists validation records with a retention TTL.
type Store interface {
	Save(ctx context.Context, record Record) error
	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	Health(ctx context.Context) error
}
