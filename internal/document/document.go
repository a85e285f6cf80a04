// Package document models the output of the extraction pipeline: the document
// type chosen by classification and the fields read from the image.
//
// Domain purity: this package performs no I/O and never reads the clock.
package document

// Status is the extraction pipeline's verdict for one image.
type Status string

const (
	StatusSuccess Status = "success"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
)

// Metadata field names. Field sets per document type are listed on Type.
const (
	FieldFullName    = "full_name"
	FieldDateOfBirth = "date_of_birth"
	FieldSex         = "sex"
	FieldAddress     = "address"

	FieldPassportNumber   = "passport_number"
	FieldCountryOfIssue   = "country_of_issue"
	FieldDateOfIssue      = "date_of_issue"
	FieldDateOfExpiry     = "date_of_expiry"
	FieldNationality      = "nationality"
	FieldPlaceOfBirth     = "place_of_birth"
	FieldDLNumber         = "dl_number"
	FieldHeight           = "height"
	FieldWeight           = "weight"
	FieldEyeColor         = "eye_color"
	FieldHairColor        = "hair_color"
	FieldIssuingState     = "issuing_state"
	FieldClass            = "class"
	FieldRestrictions     = "restrictions"
	FieldEndorsements     = "endorsements"
	FieldIDNumber         = "id_number"
	FieldIssuingAuthority = "issuing_authority"
	FieldIDType           = "id_type"
)

// FieldValue is one extracted value with the model's optional confidence.
type FieldValue struct {
	Value      string   `json:"value" yaml:"value"`
	Confidence *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// IsEmpty reports whether no value was extracted.
func (f FieldValue) IsEmpty() bool {
	return f.Value == ""
}

// EssentialFields are the identity fields every document type carries.
// Address is optional except on driver's licenses.
type EssentialFields struct {
	FullName    FieldValue  `json:"full_name" yaml:"full_name"`
	DateOfBirth FieldValue  `json:"date_of_birth" yaml:"date_of_birth"`
	Sex         FieldValue  `json:"sex" yaml:"sex"`
	Address     *FieldValue `json:"address,omitempty" yaml:"address,omitempty"`
}

// AddressValue returns the address value or "" when absent.
func (e EssentialFields) AddressValue() string {
	if e.Address == nil {
		return ""
	}
	return e.Address.Value
}

// Metadata holds the document-type-specific fields.
type Metadata map[string]FieldValue

// Value returns the field's value, or "" when the key is absent.
func (m Metadata) Value(name string) string {
	return m[name].Value
}

// Has reports whether the key exists, regardless of its value.
func (m Metadata) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// AnyValue reports whether at least one field carries a non-empty value.
func (m Metadata) AnyValue() bool {
	for _, f := range m {
		if !f.IsEmpty() {
			return true
		}
	}
	return false
}

// ExtractionResult is the structured record handed over by the extraction
// pipeline. DocumentType is only meaningful when Status is success.
type ExtractionResult struct {
	Status                   Status          `json:"status" yaml:"status"`
	DocumentType             Type            `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	ClassificationConfidence *float64        `json:"classification_confidence,omitempty" yaml:"classification_confidence,omitempty"`
	EssentialFields          EssentialFields `json:"essential_fields" yaml:"essential_fields"`
	Metadata                 Metadata        `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ExtractionNotes          string          `json:"extraction_notes,omitempty" yaml:"extraction_notes,omitempty"`
}

// Succeeded reports whether the pipeline produced fields worth checking.
func (r ExtractionResult) Succeeded() bool {
	return r.Status == StatusSuccess
}
