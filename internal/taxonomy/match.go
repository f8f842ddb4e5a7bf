package taxonomy

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// MaxHeadingLength rejects long lines before any matching.
	MaxHeadingLength = 60
	// Cutoff is the minimum similarity for a fuzzy heading match.
	Cutoff = 0.78
	// UpperCaseCutoff applies to the retry for all-caps lines.
	UpperCaseCutoff = 0.72
)

var (
	trailingPunct = regexp.MustCompile(`[:\-\x{2013}\x{2014}]+$`)
	spaces        = regexp.MustCompile(`\s+`)
)

// Normalize trims a heading candidate, strips trailing colons and dashes,
// collapses whitespace and lower-cases it.
func Normalize(line string) string {
	s := strings.TrimSpace(line)
	s = trailingPunct.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// Match maps a raw line to its canonical section. It reports false for body text.
func Match(line string) (Section, bool) {
	return Table().Match(line)
}

// Match maps a raw line to its canonical section using this alias table.
func (a *Aliases) Match(line string) (Section, bool) {
	s := Normalize(line)
	if s == "" || utf8.RuneCountInString(s) > MaxHeadingLength || strings.HasSuffix(s, ".") {
		return "", false
	}

	if section, ok := a.bucket[s]; ok {
		return section, true
	}

	if key, ok := Closest(s, a.keys, Cutoff); ok {
		return a.bucket[key], true
	}

	if isUpper(line) {
		titled := make([]string, len(a.keys))
		for i, k := range a.keys {
			titled[i] = titleCase(k)
		}
		if key, ok := Closest(titleCase(s), titled, UpperCaseCutoff); ok {
			return a.bucket[strings.ToLower(key)], true
		}
	}

	return "", false
}

// Similarity returns a ratio in [0, 1] derived from the rune edit distance.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Closest returns the candidate most similar to query at or above cutoff.
// Ties keep the earliest candidate.
func Closest(query string, candidates []string, cutoff float64) (string, bool) {
	best, bestScore := "", -1.0
	for _, c := range candidates {
		score := Similarity(query, c)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < cutoff {
		return "", false
	}
	return best, true
}

// isUpper reports whether s has at least one cased letter and no lower-case ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func titleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		sb.WriteRune(r)
		prevLetter = false
	}
	return sb.String()
}
