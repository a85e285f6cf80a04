package validation

import "encoding/json"

// SkippedMessage is returned when the extraction did not succeed.
const SkippedMessage = "validation skipped - extraction was not successful"

// Report aggregates the outcomes of one validation run.
//
// Invariants:
//   - TotalTests == Passed + Failed
//   - Errors + Warnings == Failed
//   - AllTestsPassed == (Failed == 0)
type Report struct {
	ValidationRun  bool      `json:"validation_run" yaml:"validation_run"`
	Message        string    `json:"message,omitempty" yaml:"message,omitempty"`
	TotalTests     int       `json:"total_tests" yaml:"total_tests"`
	Passed         int       `json:"passed" yaml:"passed"`
	Failed         int       `json:"failed" yaml:"failed"`
	Errors         int       `json:"errors" yaml:"errors"`
	Warnings       int       `json:"warnings" yaml:"warnings"`
	AllTestsPassed bool      `json:"all_tests_passed" yaml:"all_tests_passed"`
	TestResults    []Outcome `json:"test_results" yaml:"test_results"`
	ErrorDetails   []Outcome `json:"error_details" yaml:"error_details"`
	WarningDetails []Outcome `json:"warning_details" yaml:"warning_details"`
}

// Skipped returns the sentinel report for unsuccessful extractions.
func Skipped() Report {
	return Report{ValidationRun: false, Message: SkippedMessage}
}

// newReport summarizes outcomes in evaluation order.
func newReport(outcomes []Outcome) Report {
	r := Report{
		ValidationRun:  true,
		TotalTests:     len(outcomes),
		TestResults:    outcomes,
		ErrorDetails:   []Outcome{},
		WarningDetails: []Outcome{},
	}
	if r.TestResults == nil {
		r.TestResults = []Outcome{}
	}
	for _, o := range outcomes {
		switch {
		case o.Passed:
			r.Passed++
		case o.Severity == SeverityWarning:
			r.Failed++
			r.Warnings++
			r.WarningDetails = append(r.WarningDetails, o)
		default:
			r.Failed++
			r.Errors++
			r.ErrorDetails = append(r.ErrorDetails, o)
		}
	}
	r.AllTestsPassed = r.Failed == 0
	return r
}

// Outcome returns the first outcome with the given test id.
func (r Report) Outcome(testID string) (Outcome, bool) {
	for _, o := range r.TestResults {
		if o.TestID == testID {
			return o, true
		}
	}
	return Outcome{}, false
}

type skippedJSON struct {
	ValidationRun bool   `json:"validation_run" yaml:"validation_run"`
	Message       string `json:"message" yaml:"message"`
}

// MarshalJSON renders the skip sentinel without counts or outcome lists.
func (r Report) MarshalJSON() ([]byte, error) {
	if !r.ValidationRun {
		return json.Marshal(skippedJSON{Message: r.Message})
	}
	type plain Report
	return json.Marshal(plain(r))
}

// MarshalYAML mirrors MarshalJSON for the CLI's yaml output.
func (r Report) MarshalYAML() (any, error) {
	if !r.ValidationRun {
		return skippedJSON{Message: r.Message}, nil
	}
	type plain Report
	return plain(r), nil
}
