package bullets

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"

	"github.com/spigell/resume-parser/internal/lines"
	"github.com/spigell/resume-parser/internal/utils"
)

// MinSentenceWords is the shortest sentence kept by Recover.
const MinSentenceWords = 6

// Recover re-splits section text on sentence boundaries. It is used when list
// markup was lost in extraction and Extract found next to nothing.
func Recover(in []lines.LogicalLine) []string {
	text := strings.Join(lines.Texts(in), " ")
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	var out []string
	tokens := sentences.FromString(text)
	for tokens.Next() {
		sentence := strings.Join(strings.Fields(tokens.Value()), " ")
		if len(strings.Fields(sentence)) < MinSentenceWords {
			continue
		}
		out = append(out, sentence)
	}

	return utils.Dedupe(out, MaxBullets)
}
