// Package lines turns extracted document text into ordered logical lines.
package lines

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Marker is the normalized bullet marker used when a list item is rendered.
const Marker = "•"

// LogicalLine is one unit of normalized text in reading order.
type LogicalLine struct {
	Text     string `json:"text"`
	ListItem bool   `json:"list_item,omitempty"`
}

// String renders the line with a normalized bullet marker for list items.
func (l LogicalLine) String() string {
	if l.ListItem {
		return Marker + " " + l.Text
	}
	return l.Text
}

var (
	bulletRe  = regexp.MustCompile(`^(?:[-*·•‣◦▪▫●○■□➢➤►–]|\d{1,3}[.)])(?:\s+|$)`)
	spaceRe   = regexp.MustCompile(`\s+`)
	newlineRe = regexp.MustCompile(`\r\n?`)
	hyphenRe  = regexp.MustCompile(`([\p{L}\p{N}])-\n([\p{L}\p{N}])`)
)

// New normalizes a single raw line. Whitespace is collapsed and a leading bullet
// marker is stripped, in which case the line is flagged as a list item.
// It reports false when nothing but whitespace or a bare marker remains.
func New(raw string, listItem bool) (LogicalLine, bool) {
	text := strings.TrimSpace(spaceRe.ReplaceAllString(norm.NFKC.String(raw), " "))
	for {
		loc := bulletRe.FindStringIndex(text)
		if loc == nil {
			break
		}
		text = strings.TrimSpace(text[loc[1]:])
		listItem = true
	}
	if text == "" {
		return LogicalLine{}, false
	}
	return LogicalLine{Text: text, ListItem: listItem}, true
}

// FromText splits text on line breaks, normalizes every line and drops blank ones.
func FromText(text string) []LogicalLine {
	text = newlineRe.ReplaceAllString(text, "\n")
	parts := strings.Split(text, "\n")
	out := make([]LogicalLine, 0, len(parts))
	for _, part := range parts {
		if line, ok := New(part, false); ok {
			out = append(out, line)
		}
	}
	return out
}

// JoinHyphenated removes a dash that wraps a word across a line break.
func JoinHyphenated(text string) string {
	return hyphenRe.ReplaceAllString(text, "$1$2")
}

// Texts returns the plain text of every line.
func Texts(in []LogicalLine) []string {
	out := make([]string, len(in))
	for i, l := range in {
		out[i] = l.Text
	}
	return out
}
