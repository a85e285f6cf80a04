package validation

import (
	"fmt"
	"regexp"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	daysPerYear  = 365.25
	secondsInDay = 24 * 60 * 60

	minValidityYears = 0.5
	maxValidityYears = 20
)

var datePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// parseDate accepts exactly YYYY-MM-DD naming a real calendar day. The date is
// placed at midnight in loc so it compares sensibly with the run's "now".
// Anything else yields ok=false; no alternative layouts are attempted.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if !datePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

// daysBetween counts whole calendar days from a to b (negative when b is
// earlier). Working on civil dates keeps the arithmetic exact across DST
// shifts and far outside time.Duration's range.
func daysBetween(a, b time.Time) int64 {
	return civilDay(b) - civilDay(a)
}

func civilDay(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / secondsInDay
}

func yearsBetween(a, b time.Time) float64 {
	return float64(daysBetween(a, b)) / daysPerYear
}

// documentDates carries the raw strings for the shared date checks.
// An empty string means the date was not supplied.
type documentDates struct {
	issue  string
	expiry string
	birth  string
}

// checkDocumentDates runs the date relationship checks under prefix.
// A check is only emitted when the dates it needs were supplied and parsed.
func checkDocumentDates(prefix string, d documentDates, now time.Time) []Outcome {
	loc := now.Location()
	issue, issueOK := time.Time{}, false
	if d.issue != "" {
		issue, issueOK = parseDate(d.issue, loc)
	}
	expiry, expiryOK := time.Time{}, false
	if d.expiry != "" {
		expiry, expiryOK = parseDate(d.expiry, loc)
	}
	birth, birthOK := time.Time{}, false
	if d.birth != "" {
		birth, birthOK = parseDate(d.birth, loc)
	}

	var out []Outcome

	if d.issue != "" {
		out = append(out, result(prefix+".date_of_issue.format", issueOK, SeverityError,
			fmt.Sprintf("Date of issue is valid: %s", d.issue),
			fmt.Sprintf("Date of issue format is invalid: %s", d.issue)))
	}

	if d.expiry != "" {
		out = append(out, result(prefix+".date_of_expiry.format", expiryOK, SeverityError,
			fmt.Sprintf("Date of expiry is valid: %s", d.expiry),
			fmt.Sprintf("Date of expiry format is invalid: %s", d.expiry)))
	}

	if issueOK && expiryOK {
		out = append(out, result(prefix+".dates.expiry_after_issue", expiry.After(issue), SeverityError,
			"Expiry date is after issue date",
			fmt.Sprintf("Expiry date (%s) is not after issue date (%s)", d.expiry, d.issue)))
	}

	if issueOK && birthOK {
		out = append(out, result(prefix+".dates.issue_after_birth", issue.After(birth), SeverityError,
			"Issue date is after date of birth",
			fmt.Sprintf("Issue date (%s) is before date of birth (%s)", d.issue, d.birth)))
	}

	if issueOK && expiryOK {
		years := yearsBetween(issue, expiry)
		ok := years >= minValidityYears && years <= maxValidityYears
		out = append(out, result(prefix+".dates.validity_period", ok, SeverityWarning,
			fmt.Sprintf("Document validity period is reasonable: ~%.1f years", years),
			fmt.Sprintf("Document validity period seems unusual: ~%.1f years", years)))
	}

	if expiryOK {
		out = append(out, result(prefix+".dates.not_expired", expiry.After(now), SeverityWarning,
			fmt.Sprintf("Document is not expired (expires %s)", d.expiry),
			fmt.Sprintf("Document has expired (expired on %s)", d.expiry)))
	}

	return out
}

// dateTestIDs lists the ids checkDocumentDates may emit under prefix.
func dateTestIDs(prefix string) []string {
	return []string{
		prefix + ".date_of_issue.format",
		prefix + ".date_of_expiry.format",
		prefix + ".dates.expiry_after_issue",
		prefix + ".dates.issue_after_birth",
		prefix + ".dates.validity_period",
		prefix + ".dates.not_expired",
	}
}
