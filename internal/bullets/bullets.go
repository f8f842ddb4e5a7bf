// Package bullets recovers experience achievements from logical lines.
package bullets

import (
	"strings"

	"github.com/spigell/resume-parser/internal/lines"
	"github.com/spigell/resume-parser/internal/utils"
)

const (
	// MaxBullets caps every extracted bullet list.
	MaxBullets = 200
	// MinWords is the minimum length of an accumulated bullet that did not
	// start with a list marker.
	MinWords = 5
)

// Extract turns lines into bullets. A list item starts a new bullet that is
// kept whatever its length, a blank line closes the current one, a complete
// sentence of MinWords or more stands on its own when nothing is pending, and
// anything else continues the pending bullet as a wrapped line. Unmarked
// fragments need MinWords to count as a bullet.
func Extract(in []lines.LogicalLine) []string {
	var (
		out     []string
		pending []string
		marked  bool
	)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(pending, " "))
		if marked || len(strings.Fields(text)) >= MinWords {
			out = append(out, text)
		}
		pending = pending[:0]
		marked = false
	}

	for _, line := range in {
		text := strings.TrimSpace(line.Text)
		switch {
		case line.ListItem:
			flush()
			if text != "" {
				pending = append(pending, text)
				marked = true
			}
		case text == "":
			flush()
		case strings.HasSuffix(text, ".") && len(strings.Fields(text)) >= MinWords && len(pending) == 0:
			out = append(out, text)
		default:
			pending = append(pending, text)
		}
	}
	flush()

	return utils.Dedupe(out, MaxBullets)
}
