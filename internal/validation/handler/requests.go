package handler

import (
	"fmt"
	"maps"
	"slices"

	"idcheck/internal/document"
	dErrors "idcheck/pkg/domain-errors"
)

// ValidateRequest is the HTTP request body for POST /v1/validations: one
// extraction result as produced by the pipeline.
type ValidateRequest struct {
	document.ExtractionResult
}

// Validate checks the envelope only. Field contents are the validator's job,
// so a success result with empty or malformed fields is accepted here.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return validateResult(r.ExtractionResult, "")
}

// BatchValidateRequest is the HTTP request body for POST /v1/validations/batch.
type BatchValidateRequest struct {
	Results []document.ExtractionResult `json:"results"`
}

// Validate checks every result envelope. The upper bound on batch size is
// enforced by the service.
func (r *BatchValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Results) == 0 {
		return dErrors.New(dErrors.CodeValidation, "results must contain at least one item")
	}
	for i, result := range r.Results {
		if err := validateResult(result, fmt.Sprintf("results[%d].", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateResult(result document.ExtractionResult, path string) error {
	if result.Status == "" {
		return dErrors.New(dErrors.CodeValidation, path+"status is required")
	}
	if !validConfidence(result.ClassificationConfidence) {
		return dErrors.New(dErrors.CodeValidation, path+"classification_confidence must be between 0 and 1")
	}
	essentials := []struct {
		name  string
		value *document.FieldValue
	}{
		{document.FieldFullName, &result.EssentialFields.FullName},
		{document.FieldDateOfBirth, &result.EssentialFields.DateOfBirth},
		{document.FieldSex, &result.EssentialFields.Sex},
		{document.FieldAddress, result.EssentialFields.Address},
	}
	for _, f := range essentials {
		if f.value != nil && !validConfidence(f.value.Confidence) {
			return dErrors.New(dErrors.CodeValidation, path+"essential_fields."+f.name+".confidence must be between 0 and 1")
		}
	}
	for _, name := range slices.Sorted(maps.Keys(result.Metadata)) {
		if !validConfidence(result.Metadata[name].Confidence) {
			return dErrors.New(dErrors.CodeValidation, path+"metadata."+name+".confidence must be between 0 and 1")
		}
	}
	return nil
}

func validConfidence(c *float64) bool {
	return c == nil || (*c >= 0 && *c <= 1)
}
