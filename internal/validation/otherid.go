package validation

import (
	"fmt"

	"idcheck/internal/document"
)

const prefixOtherID = "other_id"

// Other IDs vary widely, so every miss here is only a warning.

func checkOtherIDMetadata(in checkInput) []Outcome {
	return []Outcome{result("other_id.metadata.present", in.metadata.AnyValue(), SeverityWarning,
		"Some metadata fields were successfully extracted",
		"No metadata could be extracted from this ID")}
}

func checkOtherIDType(in checkInput) []Outcome {
	idType := in.metadata.Value(document.FieldIDType)
	return []Outcome{result("other_id.id_type.identified", idType != "", SeverityWarning,
		fmt.Sprintf("ID type was identified: %s", idType),
		"ID type could not be identified")}
}

// Dates are only checked when the extraction reported at least one of them.
func checkOtherIDDates(in checkInput) []Outcome {
	if !in.metadata.Has(document.FieldDateOfIssue) && !in.metadata.Has(document.FieldDateOfExpiry) {
		return nil
	}
	return checkDocumentDates(prefixOtherID, metadataDates(in), in.now)
}
