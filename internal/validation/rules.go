package validation

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"idcheck/internal/document"
)

// checkInput is everything a check may look at. It is built once per run and
// passed by value; checks never modify it.
type checkInput struct {
	fields   document.EssentialFields
	metadata document.Metadata
	now      time.Time
	lists    AllowLists
}

// check is one independent rule. run is pure: the same input always yields
// the same outcomes.
type check struct {
	name  string
	tests []string
	run   func(in checkInput) []Outcome
}

// Rule describes a check for listings: its name and the test ids it can emit.
type Rule struct {
	Name  string   `json:"name" yaml:"name"`
	Tests []string `json:"tests" yaml:"tests"`
}

var commonChecks = []check{
	{
		name:  "essential_fields.full_name",
		tests: []string{"essential_fields.full_name.present", "essential_fields.full_name.format"},
		run:   checkFullName,
	},
	{
		name: "essential_fields.date_of_birth",
		tests: []string{
			"essential_fields.date_of_birth.present", "essential_fields.date_of_birth.format",
			"essential_fields.date_of_birth.past", "essential_fields.date_of_birth.reasonable",
		},
		run: checkDateOfBirth,
	},
	{
		name:  "essential_fields.sex",
		tests: []string{"essential_fields.sex.valid", "essential_fields.sex.present"},
		run:   checkSex,
	},
}

var passportChecks = []check{
	{
		name:  "passport.passport_number",
		tests: []string{"passport.passport_number.present", "passport.passport_number.length"},
		run:   checkPassportNumber,
	},
	{
		name:  "passport.country_of_issue",
		tests: []string{"passport.country_of_issue.present", "passport.country_of_issue.valid"},
		run:   checkCountryOfIssue,
	},
	{
		name:  "passport.nationality",
		tests: []string{"passport.nationality.valid"},
		run:   checkNationality,
	},
	{
		name:  "passport.dates",
		tests: dateTestIDs(prefixPassport),
		run:   checkPassportDates,
	},
}

var licenseChecks = []check{
	{
		name:  "license.dl_number",
		tests: []string{"license.dl_number.present", "license.dl_number.length"},
		run:   checkLicenseNumber,
	},
	{
		name:  "license.address",
		tests: []string{"license.address.present"},
		run:   checkLicenseAddress,
	},
	{
		name:  "license.height",
		tests: []string{"license.height.format"},
		run:   checkHeight,
	},
	{
		name:  "license.weight",
		tests: []string{"license.weight.format"},
		run:   checkWeight,
	},
	{
		name:  "license.issuing_state",
		tests: []string{"license.issuing_state.valid"},
		run:   checkIssuingState,
	},
	{
		name:  "license.dates",
		tests: dateTestIDs(prefixLicense),
		run:   checkLicenseDates,
	},
}

var otherIDChecks = []check{
	{
		name:  "other_id.metadata",
		tests: []string{"other_id.metadata.present"},
		run:   checkOtherIDMetadata,
	},
	{
		name:  "other_id.id_type",
		tests: []string{"other_id.id_type.identified"},
		run:   checkOtherIDType,
	},
	{
		name:  "other_id.dates",
		tests: dateTestIDs(prefixOtherID),
		run:   checkOtherIDDates,
	},
}

// checksFor selects the type-specific rule set. Unknown types get none.
func checksFor(t document.Type) []check {
	switch t {
	case document.TypePassport:
		return passportChecks
	case document.TypeDriversLicense:
		return licenseChecks
	case document.TypeOtherID:
		return otherIDChecks
	}
	return nil
}

// Rules lists, in evaluation order, the checks run for a document type.
func Rules(t document.Type) []Rule {
	var rules []Rule
	for _, set := range [][]check{commonChecks, checksFor(t)} {
		for _, c := range set {
			rules = append(rules, Rule{Name: c.name, Tests: append([]string(nil), c.tests...)})
		}
	}
	return rules
}

// alphanumericLength upper-cases s with full Unicode case mapping (so "ß"
// becomes "SS") and counts the ASCII letters and digits that remain.
// A Caser is stateful, so each call builds its own.
func alphanumericLength(s string) int {
	n := 0
	for _, r := range cases.Upper(language.Und).String(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			n++
		}
	}
	return n
}
