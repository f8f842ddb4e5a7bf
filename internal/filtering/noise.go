package filtering

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// base carries the enable/disable bookkeeping shared by the noise filters.
type base struct {
	name     string
	disabled bool
	reason   string
}

func (b *base) Name() string { return b.name }

func (b *base) Disable(reason string) {
	b.disabled = true
	b.reason = reason
}

func (b *base) IsEnabled() bool { return !b.disabled }

func (b *base) Status() Status {
	return Status{Name: b.name, Enabled: !b.disabled, Reason: b.reason}
}

type patternFilter struct {
	base
	re *regexp.Regexp
}

func (f *patternFilter) Keep(fragment string) bool {
	return !f.re.MatchString(fragment)
}

func (f *patternFilter) Status() Status {
	s := f.base.Status()
	s.Details = map[string]string{"pattern": f.re.String()}
	return s
}

// NewPattern creates a filter that drops fragments matching re.
func NewPattern(name string, re *regexp.Regexp) Filter {
	return &patternFilter{base: base{name: name}, re: re}
}

type emptyFilter struct{ base }

func (f *emptyFilter) Keep(fragment string) bool {
	return strings.TrimSpace(fragment) != ""
}

// NewEmpty creates a filter that drops blank fragments.
func NewEmpty() Filter {
	return &emptyFilter{base{name: "empty"}}
}

type lengthFilter struct {
	base
	max int
}

func (f *lengthFilter) Keep(fragment string) bool {
	return utf8.RuneCountInString(fragment) <= f.max
}

func (f *lengthFilter) Status() Status {
	s := f.base.Status()
	s.Details = map[string]string{"max": strconv.Itoa(f.max)}
	return s
}

// NewMaxLength creates a filter that drops fragments longer than max runes.
func NewMaxLength(max int) Filter {
	return &lengthFilter{base: base{name: "max_length"}, max: max}
}

type setFilter struct {
	base
	fold bool
	set  map[string]struct{}
}

func (f *setFilter) Keep(fragment string) bool {
	key := strings.TrimSuffix(strings.TrimSpace(fragment), ".")
	if f.fold {
		key = strings.ToLower(key)
	}
	_, hit := f.set[key]
	return !hit
}

func newSet(name string, fold bool, words []string) Filter {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if fold {
			w = strings.ToLower(w)
		}
		set[w] = struct{}{}
	}
	return &setFilter{base: base{name: name}, fold: fold, set: set}
}

var usStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID", "IL", "IN",
	"IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT",
	"VT", "VA", "WA", "WV", "WI", "WY",
}

var months = []string{
	"january", "february", "march", "april", "may", "june", "july", "august",
	"september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	"present", "current",
}

// NewUSState drops fragments that are exactly an upper-case U.S. state code.
func NewUSState() Filter {
	return newSet("us_state", false, usStates)
}

// NewMonth drops fragments that are a bare month name or abbreviation.
func NewMonth() Filter {
	return newSet("month", true, months)
}

var (
	dateRe  = regexp.MustCompile(`\d{4}|\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`)
	emailRe = regexp.MustCompile(`@`)
	urlRe   = regexp.MustCompile(`(?i)https?://|\bwww\.`)
)

// SkillNoise returns the default filter chain applied to skill fragments.
func SkillNoise(maxLength int) []Filter {
	return []Filter{
		NewEmpty(),
		NewMaxLength(maxLength),
		NewPattern("date", dateRe),
		NewPattern("email", emailRe),
		NewPattern("url", urlRe),
		NewUSState(),
		NewMonth(),
	}
}
