// Package validation is the sanity-check layer run over extraction results.
//
// A Validator applies the common essential-field checks and then the check set
// of the result's document type, turning every malformed, missing or unusual
// value into a failed Outcome. It never returns an error and never blocks.
//
// Domain purity: the only impure input is the clock, which is read once per
// run (or supplied by the caller through ValidateAt).
package validation

import (
	"time"

	"idcheck/internal/document"
)

// Validator runs the rule set. It holds only immutable configuration, so one
// instance may be shared by any number of goroutines.
type Validator struct {
	clock func() time.Time
	lists AllowLists
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock replaces time.Now as the source of "now".
func WithClock(clock func() time.Time) Option {
	return func(v *Validator) {
		if clock != nil {
			v.clock = clock
		}
	}
}

// WithAllowLists replaces the built-in country and state lists.
func WithAllowLists(lists AllowLists) Option {
	return func(v *Validator) {
		v.lists = lists
	}
}

// New constructs a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		clock: time.Now,
		lists: DefaultAllowLists(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks result against the current time.
func (v *Validator) Validate(result document.ExtractionResult) Report {
	return v.ValidateAt(result, v.clock())
}

// ValidateAt checks result as of now. Unsuccessful extractions are skipped.
// Unknown document types only get the common checks.
func (v *Validator) ValidateAt(result document.ExtractionResult, now time.Time) Report {
	if !result.Succeeded() {
		return Skipped()
	}

	in := checkInput{
		fields:   result.EssentialFields,
		metadata: result.Metadata,
		now:      now,
		lists:    v.lists,
	}

	// The buffer is local to this run; nothing outlives the call.
	var outcomes []Outcome
	for _, c := range commonChecks {
		outcomes = append(outcomes, c.run(in)...)
	}
	for _, c := range checksFor(result.DocumentType) {
		outcomes = append(outcomes, c.run(in)...)
	}
	return newReport(outcomes)
}
