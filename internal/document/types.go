package document

// Type is the closed set of document classes the pipeline can produce.
// A value outside the set is carried verbatim; IsKnown reports false and the
// validator runs only the common checks for it.
type Type string

const (
	TypePassport       Type = "passport"
	TypeDriversLicense Type = "drivers_license"
	TypeOtherID        Type = "other_id"
)

// Types lists the known document types in display order.
func Types() []Type {
	return []Type{TypePassport, TypeDriversLicense, TypeOtherID}
}

// IsKnown reports whether t is one of the supported document types.
func (t Type) IsKnown() bool {
	switch t {
	case TypePassport, TypeDriversLicense, TypeOtherID:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Fields returns the metadata keys extracted for this document type.
func (t Type) Fields() []string {
	switch t {
	case TypePassport:
		return []string{
			FieldPassportNumber, FieldCountryOfIssue, FieldDateOfIssue,
			FieldDateOfExpiry, FieldNationality, FieldPlaceOfBirth,
		}
	case TypeDriversLicense:
		return []string{
			FieldDLNumber, FieldDateOfIssue, FieldDateOfExpiry, FieldHeight,
			FieldWeight, FieldEyeColor, FieldHairColor, FieldIssuingState,
			FieldClass, FieldRestrictions, FieldEndorsements,
		}
	case TypeOtherID:
		return []string{
			FieldIDNumber, FieldIssuingAuthority, FieldDateOfIssue,
			FieldDateOfExpiry, FieldIDType,
		}
	}
	return nil
}

// RequiredFields returns the metadata keys the extraction schema requires.
// Other IDs vary too much to require anything.
func (t Type) RequiredFields() []string {
	switch t {
	case TypePassport:
		return []string{FieldPassportNumber, FieldCountryOfIssue, FieldDateOfIssue, FieldDateOfExpiry}
	case TypeDriversLicense:
		return []string{FieldDLNumber}
	}
	return nil
}

// RequiresAddress reports whether the address essential field is mandatory.
func (t Type) RequiresAddress() bool {
	return t == TypeDriversLicense
}
