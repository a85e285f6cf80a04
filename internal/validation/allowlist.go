package validation

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllowList is an upper-cased set of accepted names and codes. Membership is
// an exact match after upper-casing the candidate.
type AllowList struct {
	set map[string]struct{}
}

// NewAllowList builds a list from the given entries.
func NewAllowList(entries ...string) AllowList {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		e = strings.ToUpper(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return AllowList{set: set}
}

// Contains reports whether value is on the list.
func (a AllowList) Contains(value string) bool {
	_, ok := a.set[strings.ToUpper(value)]
	return ok
}

// Configured reports whether the list was built at all. The zero AllowList
// is unconfigured and checks that depend on it are not run.
func (a AllowList) Configured() bool {
	return a.set != nil
}

// Len returns the number of entries.
func (a AllowList) Len() int {
	return len(a.set)
}

// Entries returns the entries sorted.
func (a AllowList) Entries() []string {
	out := make([]string, 0, len(a.set))
	for e := range a.set {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// AllowLists groups the lists the checks consult. States is opt-in: the
// license issuing-state check only runs when it is configured.
type AllowLists struct {
	Countries AllowList
	States    AllowList
}

// DefaultAllowLists returns the built-in country list with no state list.
func DefaultAllowLists() AllowLists {
	return AllowLists{
		Countries: NewAllowList(defaultCountries...),
	}
}

// USStates returns the US state codes and names, for callers that
// want issuing states checked.
func USStates() AllowList {
	return NewAllowList(usStates...)
}

type allowListFile struct {
	Countries []string `yaml:"countries"`
	States    []string `yaml:"states"`
}

// LoadAllowLists reads a YAML document with optional `countries` and
// `states` sequences. A missing `countries` keeps the built-in list; a
// missing `states` leaves the issuing-state check off.
func LoadAllowLists(r io.Reader) (AllowLists, error) {
	var f allowListFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return AllowLists{}, fmt.Errorf("decode allow lists: %w", err)
	}
	lists := DefaultAllowLists()
	if f.Countries != nil {
		lists.Countries = NewAllowList(f.Countries...)
	}
	if f.States != nil {
		lists.States = NewAllowList(f.States...)
	}
	return lists, nil
}

var defaultCountries = []string{
	"USA", "US", "UNITED STATES", "UNITED STATES OF AMERICA",
	"UK", "GB", "UNITED KINGDOM", "GREAT BRITAIN",
	"CANADA", "CA", "CAN",
	"AUSTRALIA", "AU", "AUS",
	"INDIA", "IN", "IND",
	"CHINA", "CN", "CHN",
	"JAPAN", "JP", "JPN",
	"GERMANY", "DE", "DEU",
	"FRANCE", "FR", "FRA",
	"ITALY", "IT", "ITA",
	"SPAIN", "ES", "ESP",
	"MEXICO", "MX", "MEX",
	"BRAZIL", "BR", "BRA",
	"RUSSIA", "RU", "RUS",
	"SOUTH AFRICA", "ZA", "ZAF",
}

var usStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
	"ALABAMA", "ALASKA", "ARIZONA", "ARKANSAS", "CALIFORNIA",
	"COLORADO", "CONNECTICUT", "DELAWARE", "FLORIDA", "GEORGIA",
	"HAWAII", "IDAHO", "ILLINOIS", "INDIANA", "IOWA",
	"KANSAS", "KENTUCKY", "LOUISIANA", "MAINE", "MARYLAND",
	"MASSACHUSETTS", "MICHIGAN", "MINNESOTA", "MISSISSIPPI", "MISSOURI",
	"MONTANA", "NEBRASKA", "NEVADA", "NEW HAMPSHIRE", "NEW JERSEY",
	"NEW MEXICO", "NEW YORK", "NORTH CAROLINA", "NORTH DAKOTA", "OHIO",
	"OKLAHOMA", "OREGON", "PENNSYLVANIA", "RHODE ISLAND", "SOUTH CAROLINA",
	"SOUTH DAKOTA", "TENNESSEE", "TEXAS", "UTAH", "VERMONT",
	"VIRGINIA", "WASHINGTON", "WEST VIRGINIA", "WISCONSIN", "WYOMING",
}
