package utils

import "strings"

// TruncateForLog flattens s onto one line and cuts it to limit runes, marking
// the cut with "...". OCR transcripts span many lines; logs should not.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	flat := strings.Join(strings.Fields(s), " ")
	n := 0
	for i := range flat {
		if n == limit {
			return flat[:i] + "..."
		}
		n++
	}
	return flat
}
