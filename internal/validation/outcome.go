package validation

// Severity says how much a failed check matters.
type Severity string

const (
	// SeverityError marks a hard failure: the extracted data is wrong.
	SeverityError Severity = "error"
	// SeverityWarning marks an advisory failure: the data is unusual but the
	// document is not necessarily invalid.
	SeverityWarning Severity = "warning"
)

// Outcome is the result of one check. Outcomes are values and are never
// modified once a run has produced them.
type Outcome struct {
	TestID   string   `json:"test" yaml:"test"`
	Passed   bool     `json:"passed" yaml:"passed"`
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// IsError reports whether the outcome is a hard failure.
func (o Outcome) IsError() bool {
	return !o.Passed && o.Severity == SeverityError
}

// IsWarning reports whether the outcome is an advisory failure.
func (o Outcome) IsWarning() bool {
	return !o.Passed && o.Severity == SeverityWarning
}

// A passing outcome carries the severity it would have failed with.
func pass(testID string, sev Severity, msg string) Outcome {
	return Outcome{TestID: testID, Passed: true, Message: msg, Severity: sev}
}

func fail(testID string, sev Severity, msg string) Outcome {
	return Outcome{TestID: testID, Passed: false, Message: msg, Severity: sev}
}

func result(testID string, ok bool, sev Severity, passMsg, failMsg string) Outcome {
	if ok {
		return pass(testID, sev, passMsg)
	}
	return fail(testID, sev, failMsg)
}
