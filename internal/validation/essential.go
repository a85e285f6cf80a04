package validation

import (
	"fmt"
	"strings"
)

const (
	minAge = 1
	maxAge = 150
)

func checkFullName(in checkInput) []Outcome {
	name := strings.TrimSpace(in.fields.FullName.Value)
	if name == "" {
		return []Outcome{fail("essential_fields.full_name.present", SeverityError, "Full name is missing or empty")}
	}

	parts := len(strings.Fields(name))
	return []Outcome{
		pass("essential_fields.full_name.present", SeverityError, fmt.Sprintf("Full name is present: %s", name)),
		result("essential_fields.full_name.format", parts >= 2, SeverityWarning,
			"Name has at least first and last name",
			fmt.Sprintf("Name may be incomplete - only %d part(s) found", parts)),
	}
}

func checkDateOfBirth(in checkInput) []Outcome {
	raw := in.fields.DateOfBirth.Value
	if raw == "" {
		return []Outcome{fail("essential_fields.date_of_birth.present", SeverityError, "Date of birth is missing")}
	}

	dob, ok := parseDate(raw, in.now.Location())
	if !ok {
		return []Outcome{fail("essential_fields.date_of_birth.format", SeverityError,
			fmt.Sprintf("Date of birth format is invalid: %s", raw))}
	}

	age := yearsBetween(dob, in.now)
	return []Outcome{
		pass("essential_fields.date_of_birth.format", SeverityError, fmt.Sprintf("Date of birth is in valid format: %s", raw)),
		result("essential_fields.date_of_birth.past", dob.Before(in.now), SeverityError,
			"Date of birth is in the past",
			"Date of birth is in the future - invalid"),
		result("essential_fields.date_of_birth.reasonable", age >= minAge && age <= maxAge, SeverityError,
			fmt.Sprintf("Age is reasonable: ~%d years", int(age)),
			fmt.Sprintf("Age seems unreasonable: ~%d years", int(age))),
	}
}

func checkSex(in checkInput) []Outcome {
	sex := in.fields.Sex.Value
	switch sex {
	case "M", "F", "X":
		return []Outcome{pass("essential_fields.sex.valid", SeverityWarning, fmt.Sprintf("Sex is valid: %s", sex))}
	case "":
		return []Outcome{fail("essential_fields.sex.present", SeverityWarning, "Sex is missing")}
	}
	return []Outcome{fail("essential_fields.sex.valid", SeverityWarning,
		fmt.Sprintf("Sex value is invalid: %s (expected M, F, or X)", sex))}
}
