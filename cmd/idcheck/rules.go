package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"idcheck/internal/document"
	"idcheck/internal/validation"
)

var (
	rulesType      string
	rulesFormat    string
	rulesLists     bool
	rulesCountries string
	rulesUSStates  bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the checks run for each document type",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesType, "type", "", "Only list checks for this document type (passport, drivers_license, other_id)")
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "table", "Output format: table, json")
	rulesCmd.Flags().BoolVar(&rulesLists, "lists", false, "Show the country and state allow-lists instead of the rules")
	rulesCmd.Flags().StringVar(&rulesCountries, "countries", "", "YAML file overriding the allow-lists (with --lists)")
	rulesCmd.Flags().BoolVar(&rulesUSStates, "us-states", false, "Include the US state list (with --lists)")
}

type rulesListing struct {
	DocumentType document.Type     `json:"document_type"`
	Rules        []validation.Rule `json:"rules"`
}

type allowListsListing struct {
	Countries []string `json:"countries"`
	States    []string `json:"states"`
}

func runRules(cmd *cobra.Command, args []string) error {
	if rulesLists {
		return runLists(cmd)
	}

	types := document.Types()
	if rulesType != "" {
		t := document.Type(rulesType)
		if !t.IsKnown() {
			return fmt.Errorf("unknown document type %q", rulesType)
		}
		types = []document.Type{t}
	}

	listings := make([]rulesListing, 0, len(types))
	for _, t := range types {
		listings = append(listings, rulesListing{DocumentType: t, Rules: validation.Rules(t)})
	}

	switch rulesFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(listings)
	case "table":
		return outputRulesTable(cmd, listings)
	default:
		return fmt.Errorf("unknown output format: %s", rulesFormat)
	}
}

func outputRulesTable(cmd *cobra.Command, listings []rulesListing) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tRULE\tTESTS")
	for _, l := range listings {
		for _, r := range l.Rules {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.DocumentType, r.Name, strings.Join(r.Tests, ", "))
		}
	}
	return w.Flush()
}

func runLists(cmd *cobra.Command) error {
	lists := validation.DefaultAllowLists()
	if rulesCountries != "" {
		var err error
		if lists, err = loadAllowLists(rulesCountries); err != nil {
			return err
		}
	}
	if rulesUSStates && !lists.States.Configured() {
		lists.States = validation.USStates()
	}
	listing := allowListsListing{
		Countries: lists.Countries.Entries(),
		States:    lists.States.Entries(),
	}

	switch rulesFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(listing)
	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LIST\tENTRIES")
		fmt.Fprintf(w, "countries\t%s\n", strings.Join(listing.Countries, ", "))
		states := "(not checked)"
		if lists.States.Configured() {
			states = strings.Join(listing.States, ", ")
		}
		fmt.Fprintf(w, "states\t%s\n", states)
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format: %s", rulesFormat)
	}
}
