package utils

import "strings"

// Dedupe drops case-insensitive duplicates while keeping first-seen order.
// The result holds at most limit entries and is never nil.
func Dedupe(in []string, limit int) []string {
	if limit < 0 {
		limit = 0
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, min(len(in), limit))
	for _, s := range in {
		if len(out) == limit {
			break
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
