package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"idcheck/internal/document"
)

const (
	prefixLicense = "license"

	minLicenseNumberLen = 5
	maxLicenseNumberLen = 20
	minAddressLen       = 5
)

var heightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+'\s*\d+"`),         // 5'10"
	regexp.MustCompile(`(?i)\d+\s*ft\s*\d*\s*in`), // 5 ft 10 in
	regexp.MustCompile(`(?i)\d+\s*cm`),            // 178 cm
}

var weightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s*lbs?`),
	regexp.MustCompile(`(?i)\d+\s*kg`),
}

func checkLicenseNumber(in checkInput) []Outcome {
	number := in.metadata.Value(document.FieldDLNumber)
	if number == "" {
		return []Outcome{fail("license.dl_number.present", SeverityError, "License number is missing")}
	}

	n := alphanumericLength(number)
	return []Outcome{result("license.dl_number.length",
		n >= minLicenseNumberLen && n <= maxLicenseNumberLen, SeverityWarning,
		fmt.Sprintf("License number length is valid: %d characters", n),
		fmt.Sprintf("License number length is unusual: %d characters", n))}
}

func checkLicenseAddress(in checkInput) []Outcome {
	address := strings.TrimSpace(in.fields.AddressValue())
	return []Outcome{result("license.address.present", utf8.RuneCountInString(address) > minAddressLen, SeverityError,
		"Address is present and appears complete",
		"Address is missing or incomplete")}
}

func checkHeight(in checkInput) []Outcome {
	height := in.metadata.Value(document.FieldHeight)
	if height == "" {
		return nil
	}
	return []Outcome{result("license.height.format", matchesAny(heightPatterns, height), SeverityWarning,
		fmt.Sprintf("Height format is valid: %s", height),
		fmt.Sprintf("Height format may be invalid: %s", height))}
}

func checkWeight(in checkInput) []Outcome {
	weight := in.metadata.Value(document.FieldWeight)
	if weight == "" {
		return nil
	}
	return []Outcome{result("license.weight.format", matchesAny(weightPatterns, weight), SeverityWarning,
		fmt.Sprintf("Weight format is valid: %s", weight),
		fmt.Sprintf("Weight format may be invalid: %s", weight))}
}

func checkIssuingState(in checkInput) []Outcome {
	state := in.metadata.Value(document.FieldIssuingState)
	if state == "" || !in.lists.States.Configured() {
		return nil
	}
	return []Outcome{result("license.issuing_state.valid", in.lists.States.Contains(state), SeverityWarning,
		fmt.Sprintf("Issuing state is valid: %s", state),
		fmt.Sprintf("Issuing state may be invalid or unrecognized: %s", state))}
}

func checkLicenseDates(in checkInput) []Outcome {
	return checkDocumentDates(prefixLicense, metadataDates(in), in.now)
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
