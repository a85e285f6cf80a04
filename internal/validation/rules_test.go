package validation

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcheck/internal/document"
)

var testNow = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func input(fields document.EssentialFields, md document.Metadata) checkInput {
	return checkInput{fields: fields, metadata: md, now: testNow, lists: DefaultAllowLists()}
}

func val(v string) document.FieldValue {
	return document.FieldValue{Value: v}
}

func ids(outcomes []Outcome) []string {
	out := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, o.TestID)
	}
	return out
}

func TestCheckFullName(t *testing.T) {
	t.Run("whitespace-only name is missing", func(t *testing.T) {
		out := checkFullName(input(document.EssentialFields{FullName: val("   ")}, nil))
		require.Len(t, out, 1)
		assert.Equal(t, "essential_fields.full_name.present", out[0].TestID)
		assert.True(t, out[0].IsError())
		assert.Equal(t, "Full name is missing or empty", out[0].Message)
	})

	t.Run("two tokens pass format", func(t *testing.T) {
		out := checkFullName(input(document.EssentialFields{FullName: val(" John  Smith ")}, nil))
		require.Len(t, out, 2)
		assert.True(t, out[0].Passed)
		assert.True(t, out[1].Passed)
		assert.Contains(t, out[0].Message, "John  Smith")
	})
}

func TestCheckDateOfBirth(t *testing.T) {
	cases := []struct {
		name    string
		dob     string
		wantIDs []string
		failed  []string
	}{
		{"missing", "", []string{"essential_fields.date_of_birth.present"}, []string{"essential_fields.date_of_birth.present"}},
		{"unpadded month", "1990-5-15", []string{"essential_fields.date_of_birth.format"}, []string{"essential_fields.date_of_birth.format"}},
		{"slashes", "15/05/1990", []string{"essential_fields.date_of_birth.format"}, []string{"essential_fields.date_of_birth.format"}},
		{"future", "2030-01-01", []string{
			"essential_fields.date_of_birth.format", "essential_fields.date_of_birth.past", "essential_fields.date_of_birth.reasonable",
		}, []string{"essential_fields.date_of_birth.past", "essential_fields.date_of_birth.reasonable"}},
		{"too young", "2023-06-02", []string{
			"essential_fields.date_of_birth.format", "essential_fields.date_of_birth.past", "essential_fields.date_of_birth.reasonable",
		}, []string{"essential_fields.date_of_birth.reasonable"}},
		{"too old", "1850-01-01", []string{
			"essential_fields.date_of_birth.format", "essential_fields.date_of_birth.past", "essential_fields.date_of_birth.reasonable",
		}, []string{"essential_fields.date_of_birth.reasonable"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := checkDateOfBirth(input(document.EssentialFields{DateOfBirth: val(tc.dob)}, nil))
			assert.Equal(t, tc.wantIDs, ids(out))
			for _, o := range out {
				if slices.Contains(tc.failed, o.TestID) {
					assert.True(t, o.IsError(), o.TestID)
				} else {
					assert.True(t, o.Passed, o.TestID)
				}
			}
		})
	}

	t.Run("born today is in the past but too young", func(t *testing.T) {
		out := checkDateOfBirth(input(document.EssentialFields{DateOfBirth: val("2024-06-01")}, nil))
		require.Len(t, out, 3)
		assert.True(t, out[1].Passed)
		assert.False(t, out[2].Passed)
		assert.Equal(t, "Age seems unreasonable: ~0 years", out[2].Message)
	})

	t.Run("exactly one leap year old is reasonable", func(t *testing.T) {
		out := checkDateOfBirth(input(document.EssentialFields{DateOfBirth: val("2023-06-01")}, nil))
		require.Len(t, out, 3)
		assert.True(t, out[2].Passed)
	})
}

func TestCheckSex(t *testing.T) {
	for _, v := range []string{"M", "F", "X"} {
		out := checkSex(input(document.EssentialFields{Sex: val(v)}, nil))
		require.Len(t, out, 1)
		assert.True(t, out[0].Passed, v)
	}

	out := checkSex(input(document.EssentialFields{Sex: val("m")}, nil))
	assert.Equal(t, "essential_fields.sex.valid", out[0].TestID)
	assert.True(t, out[0].IsWarning())

	out = checkSex(input(document.EssentialFields{}, nil))
	assert.Equal(t, "essential_fields.sex.present", out[0].TestID)
	assert.True(t, out[0].IsWarning())
}

func TestPassportChecks(t *testing.T) {
	t.Run("missing number is an error", func(t *testing.T) {
		out := checkPassportNumber(input(document.EssentialFields{}, document.Metadata{}))
		assert.Equal(t, []string{"passport.passport_number.present"}, ids(out))
		assert.True(t, out[0].IsError())
	})

	t.Run("length bounds", func(t *testing.T) {
		for number, ok := range map[string]bool{
			"12345":            false,
			"123456":           true,
			"X-123456789012345": false,
			"1234567890ABCDE":  true,
			"ÄÖÜ-12":           false,
		} {
			out := checkPassportNumber(input(document.EssentialFields{}, document.Metadata{document.FieldPassportNumber: val(number)}))
			require.Len(t, out, 1)
			assert.Equal(t, ok, out[0].Passed, number)
			assert.Equal(t, SeverityWarning, out[0].Severity)
		}
	})

	t.Run("country membership is case-insensitive", func(t *testing.T) {
		out := checkCountryOfIssue(input(document.EssentialFields{}, document.Metadata{document.FieldCountryOfIssue: val("south africa")}))
		assert.True(t, out[0].Passed)

		out = checkCountryOfIssue(input(document.EssentialFields{}, document.Metadata{document.FieldCountryOfIssue: val("Atlantis")}))
		assert.True(t, out[0].IsWarning())

		out = checkCountryOfIssue(input(document.EssentialFields{}, document.Metadata{}))
		assert.Equal(t, "passport.country_of_issue.present", out[0].TestID)
		assert.True(t, out[0].IsError())
	})

	t.Run("absent nationality is silent", func(t *testing.T) {
		assert.Empty(t, checkNationality(input(document.EssentialFields{}, document.Metadata{})))
	})
}

func TestAlphanumericLength(t *testing.T) {
	cases := map[string]int{
		"AB 12-34-567": 9,
		"x1234567":     8,
		"ßßß123":       9,
		"ÄÖÜ-12":       2,
		"":             0,
	}
	for in, want := range cases {
		assert.Equal(t, want, alphanumericLength(in), in)
	}

	out := checkPassportNumber(input(document.EssentialFields{}, document.Metadata{document.FieldPassportNumber: val("ßßß123")}))
	require.Len(t, out, 1)
	assert.True(t, out[0].Passed)
	assert.Contains(t, out[0].Message, "9 characters")
}

func TestLicenseFormats(t *testing.T) {
	heights := map[string]bool{
		`5'10"`:      true,
		`6' 1"`:      true,
		"5 ft 10 in": true,
		"5FT IN":     true,
		"178 cm":     true,
		"178CM":      true,
		"tall":       false,
		"5'10":       false,
	}
	for h, ok := range heights {
		out := checkHeight(input(document.EssentialFields{}, document.Metadata{document.FieldHeight: val(h)}))
		require.Len(t, out, 1)
		assert.Equal(t, ok, out[0].Passed, h)
	}

	weights := map[string]bool{
		"180 lbs": true,
		"180lb":   true,
		"82 KG":   true,
		"82":      false,
		"heavy":   false,
	}
	for w, ok := range weights {
		out := checkWeight(input(document.EssentialFields{}, document.Metadata{document.FieldWeight: val(w)}))
		require.Len(t, out, 1)
		assert.Equal(t, ok, out[0].Passed, w)
	}
}

func TestLicenseAddress(t *testing.T) {
	short := val(" 12 A ")
	out := checkLicenseAddress(input(document.EssentialFields{Address: &short}, nil))
	assert.True(t, out[0].IsError())

	full := val("1 Main St")
	out = checkLicenseAddress(input(document.EssentialFields{Address: &full}, nil))
	assert.True(t, out[0].Passed)
}

func TestOtherIDDatesRequireAKey(t *testing.T) {
	assert.Empty(t, checkOtherIDDates(input(document.EssentialFields{}, document.Metadata{document.FieldIDNumber: val("42")})))

	out := checkOtherIDDates(input(document.EssentialFields{}, document.Metadata{document.FieldDateOfExpiry: val("2020-01-01")}))
	assert.Equal(t, []string{"other_id.date_of_expiry.format", "other_id.dates.not_expired"}, ids(out))
}

func TestRulesListing(t *testing.T) {
	rules := Rules(document.TypePassport)
	require.NotEmpty(t, rules)
	assert.Equal(t, "essential_fields.full_name", rules[0].Name)
	assert.Equal(t, "passport.dates", rules[len(rules)-1].Name)
	assert.Contains(t, rules[len(rules)-1].Tests, "passport.dates.validity_period")

	assert.Len(t, Rules(document.Type("unknown")), len(commonChecks))
}
