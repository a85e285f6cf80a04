package handler

import (
	"time"

	"idcheck/internal/validation"
	"idcheck/internal/validation/service"
	"idcheck/internal/validation/store"
)

// ValidationResponse is one stored validation as returned by the API.
type ValidationResponse struct {
	ID           string            `json:"id"`
	DocumentType string            `json:"document_type"`
	ValidatedAt  time.Time         `json:"validated_at"`
	Report       validation.Report `json:"report"`
}

// BatchValidationResponse wraps the results of a batch, in request order.
type BatchValidationResponse struct {
	Validations []ValidationResponse `json:"validations"`
}

// DocumentTypesResponse lists the supported document types.
type DocumentTypesResponse struct {
	DocumentTypes []service.DocumentType `json:"document_types"`
}

// FromRecord converts a stored record to its response shape.
func FromRecord(r *store.Record) ValidationResponse {
	return ValidationResponse{
		ID:           r.ID.String(),
		DocumentType: string(r.DocumentType),
		ValidatedAt:  r.ValidatedAt.UTC(),
		Report:       r.Report,
	}
}

// FromRecords converts a batch of records.
func FromRecords(records []*store.Record) BatchValidationResponse {
	out := make([]ValidationResponse, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return BatchValidationResponse{Validations: out}
}
