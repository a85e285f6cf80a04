package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"idcheck/internal/document"
	"idcheck/internal/validation/service"
	"idcheck/internal/validation/store"
	dErrors "idcheck/pkg/domain-errors"
	"idcheck/pkg/platform/httputil"
	"idcheck/pkg/requestcontext"
)

// Service defines the interface for validation operations.
type Service interface {
	Validate(ctx context.Context, result document.ExtractionResult) (*store.Record, error)
	ValidateBatch(ctx context.Context, results []document.ExtractionResult) ([]*store.Record, error)
	Get(ctx context.Context, id uuid.UUID) (*store.Record, error)
	DocumentTypes() []service.DocumentType
}

// Handler wires validation endpoints to the validation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a validation handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/validations", h.HandleValidate)
	r.Post("/v1/validations/batch", h.HandleValidateBatch)
	r.Get("/v1/validations/{id}", h.HandleGet)
	r.Get("/v1/document-types", h.HandleDocumentTypes)
}

// HandleValidate handles POST /v1/validations requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, err := h.service.Validate(ctx, req.ExtractionResult)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation failed",
			"request_id", requestID,
			"document_type", req.DocumentType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "validation served",
		"request_id", requestID,
		"validation_id", record.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleValidateBatch handles POST /v1/validations/batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	records, err := h.service.ValidateBatch(ctx, req.Results)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch validation failed",
			"request_id", requestID,
			"batch_size", len(req.Results),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch validation served",
		"request_id", requestID,
		"batch_size", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleGet handles GET /v1/validations/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid validation id"))
		return
	}

	record, err := h.service.Get(ctx, id)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to load validation",
				"request_id", requestID,
				"validation_id", id,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(record))
}

// HandleDocumentTypes handles GET /v1/document-types requests.
func (h *Handler) HandleDocumentTypes(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, DocumentTypesResponse{DocumentTypes: h.service.DocumentTypes()})
}
