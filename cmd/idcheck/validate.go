package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"idcheck/internal/document"
	"idcheck/internal/validation"
)

// errChecksFailed is returned when --fail-on-error is set and at least one
// report carries an error. main exits non-zero without printing it.
var errChecksFailed = errors.New("validation reported errors")

var (
	validateFormat      string
	validateCountries   string
	validateFailOnError bool
	validateAsOf        string
	validateUSStates    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate extraction results from JSON files",
	Long: `Validate one or more extraction results. Each file holds a single JSON
extraction result or a JSON array of them. Use "-" or no arguments to read
from stdin.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format: text, json, yaml")
	validateCmd.Flags().StringVar(&validateCountries, "countries", "", "YAML file overriding the country and state allow-lists")
	validateCmd.Flags().BoolVar(&validateFailOnError, "fail-on-error", false, "Exit non-zero when any report has errors")
	validateCmd.Flags().StringVar(&validateAsOf, "as-of", "", "Evaluate dates as of the end of day YYYY-MM-DD instead of now")
	validateCmd.Flags().BoolVar(&validateUSStates, "us-states", false, "Warn when a license's issuing state is not a US state")
}

type fileReport struct {
	File         string            `json:"file" yaml:"file"`
	Index        int               `json:"index" yaml:"index"`
	DocumentType document.Type     `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	Report       validation.Report `json:"report" yaml:"report"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	switch validateFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", validateFormat)
	}

	lists := validation.DefaultAllowLists()
	if validateCountries != "" {
		var err error
		if lists, err = loadAllowLists(validateCountries); err != nil {
			return err
		}
	}
	if validateUSStates && !lists.States.Configured() {
		lists.States = validation.USStates()
	}
	validator := validation.New(validation.WithAllowLists(lists))

	now := time.Now()
	if validateAsOf != "" {
		asOf, err := time.ParseInLocation(time.DateOnly, validateAsOf, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --as-of %q: expected YYYY-MM-DD", validateAsOf)
		}
		// The last instant of the day, so the date behaves like a live run on it.
		now = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 23, 59, 59, 999999999, time.Local)
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	var reports []fileReport
	for _, path := range args {
		results, err := readResults(cmd, path)
		if err != nil {
			return err
		}
		for i, result := range results {
			reports = append(reports, fileReport{
				File:         displayName(path),
				Index:        i,
				DocumentType: result.DocumentType,
				Report:       validator.ValidateAt(result, now),
			})
		}
	}

	var err error
	switch validateFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		err = encoder.Encode(reports)
	case "yaml":
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		err = encoder.Encode(reports)
		if err == nil {
			err = encoder.Close()
		}
	default:
		outputText(cmd.OutOrStdout(), reports, newStyles())
	}
	if err != nil {
		return err
	}

	if validateFailOnError {
		for _, r := range reports {
			if r.Report.Errors > 0 {
				return errChecksFailed
			}
		}
	}
	return nil
}

func loadAllowLists(path string) (validation.AllowLists, error) {
	f, err := os.Open(path)
	if err != nil {
		return validation.AllowLists{}, fmt.Errorf("open allow-list file: %w", err)
	}
	defer f.Close()
	return validation.LoadAllowLists(f)
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// readResults decodes either a single extraction result or an array of them.
func readResults(cmd *cobra.Command, path string) ([]document.ExtractionResult, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", displayName(path), err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty input", displayName(path))
	}

	if data[0] == '[' {
		var results []document.ExtractionResult
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, fmt.Errorf("%s: invalid JSON: %w", displayName(path), err)
		}
		return results, nil
	}
	var result document.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", displayName(path), err)
	}
	return []document.ExtractionResult{result}, nil
}

type styles struct {
	header  *color.Color
	pass    *color.Color
	err     *color.Color
	warning *color.Color
	muted   *color.Color
}

func newStyles() styles {
	return styles{
		header:  color.New(color.Bold),
		pass:    color.New(color.FgGreen),
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow),
		muted:   color.New(color.Faint),
	}
}

func outputText(w io.Writer, reports []fileReport, s styles) {
	perFile := make(map[string]int)
	for _, fr := range reports {
		perFile[fr.File]++
	}
	for _, fr := range reports {
		title := fr.File
		if perFile[fr.File] > 1 {
			title = fmt.Sprintf("%s[%d]", fr.File, fr.Index)
		}
		docType := string(fr.DocumentType)
		if docType == "" {
			docType = "unclassified"
		}
		s.header.Fprintf(w, "%s", title)
		fmt.Fprintf(w, " (%s)\n", docType)

		r := fr.Report
		if !r.ValidationRun {
			s.muted.Fprintf(w, "  %s\n\n", r.Message)
			continue
		}
		for _, o := range r.ErrorDetails {
			s.err.Fprint(w, "  ERROR   ")
			fmt.Fprintf(w, "%s: %s\n", o.TestID, o.Message)
		}
		for _, o := range r.WarningDetails {
			s.warning.Fprint(w, "  WARNING ")
			fmt.Fprintf(w, "%s: %s\n", o.TestID, o.Message)
		}

		summary := fmt.Sprintf("  %d/%d passed, %d errors, %d warnings", r.Passed, r.TotalTests, r.Errors, r.Warnings)
		switch {
		case r.Errors > 0:
			s.err.Fprintln(w, summary)
		case r.Warnings > 0:
			s.warning.Fprintln(w, summary)
		default:
			s.pass.Fprintln(w, summary)
		}
		fmt.Fprintln(w)
	}
}
