package validation

import (
	"fmt"

	"idcheck/internal/document"
)

const (
	prefixPassport = "passport"

	minPassportNumberLen = 6
	maxPassportNumberLen = 15
)

func checkPassportNumber(in checkInput) []Outcome {
	number := in.metadata.Value(document.FieldPassportNumber)
	if number == "" {
		return []Outcome{fail("passport.passport_number.present", SeverityError, "Passport number is missing")}
	}

	n := alphanumericLength(number)
	return []Outcome{result("passport.passport_number.length",
		n >= minPassportNumberLen && n <= maxPassportNumberLen, SeverityWarning,
		fmt.Sprintf("Passport number length is valid: %d characters", n),
		fmt.Sprintf("Passport number length is unusual: %d characters (expected %d-%d)", n, minPassportNumberLen, maxPassportNumberLen))}
}

func checkCountryOfIssue(in checkInput) []Outcome {
	country := in.metadata.Value(document.FieldCountryOfIssue)
	if country == "" {
		return []Outcome{fail("passport.country_of_issue.present", SeverityError, "Country of issue is missing")}
	}
	return []Outcome{result("passport.country_of_issue.valid", in.lists.Countries.Contains(country), SeverityWarning,
		fmt.Sprintf("Country of issue is valid: %s", country),
		fmt.Sprintf("Country of issue may be invalid or unrecognized: %s", country))}
}

// Nationality is optional; nothing is reported when it was not extracted.
func checkNationality(in checkInput) []Outcome {
	nationality := in.metadata.Value(document.FieldNationality)
	if nationality == "" {
		return nil
	}
	return []Outcome{result("passport.nationality.valid", in.lists.Countries.Contains(nationality), SeverityWarning,
		fmt.Sprintf("Nationality is valid: %s", nationality),
		fmt.Sprintf("Nationality may be invalid or unrecognized: %s", nationality))}
}

func checkPassportDates(in checkInput) []Outcome {
	return checkDocumentDates(prefixPassport, metadataDates(in), in.now)
}

func metadataDates(in checkInput) documentDates {
	return documentDates{
		issue:  in.metadata.Value(document.FieldDateOfIssue),
		expiry: in.metadata.Value(document.FieldDateOfExpiry),
		birth:  in.fields.DateOfBirth.Value,
	}
}
