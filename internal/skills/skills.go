// Package skills turns skill-section lines into a de-duplicated skill list.
package skills

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/filtering"
	"github.com/spigell/resume-parser/internal/lines"
	"github.com/spigell/resume-parser/internal/utils"
)

const (
	// MaxSkills caps the extracted list.
	MaxSkills = 80
	// MaxFragmentLength drops fragments that read like sentences.
	MaxFragmentLength = 50
	// commaDense is the comma count above which only commas, semicolons and
	// line breaks separate skills.
	commaDense = 3
)

var (
	denseSplit = regexp.MustCompile(`[,;\n]`)
	broadSplit = regexp.MustCompile(`[,/|;•·▪●\n]`)
	// categoryRe matches "Languages: Python, SQL" style lines.
	categoryRe = regexp.MustCompile(`^([\p{L}][\p{L}\p{N} &+/-]{0,29}):\s*(.+)$`)
)

// categoryWords mark labels that introduce a skill list outside a skills section.
var categoryWords = []string{
	"language", "framework", "tool", "technolog", "database", "platform", "cloud",
	"librar", "skill", "software", "stack", "tech", "devops", "infrastructure",
}

// Extractor splits skill text and drops noise fragments.
type Extractor struct {
	filters []filtering.Filter
	logger  *zap.Logger
}

// New creates an Extractor with the default noise filters. Filters named in
// disabled stay in the chain but are skipped.
func New(logger *zap.Logger, disabled ...string) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	filters := filtering.SkillNoise(MaxFragmentLength)
	for _, name := range disabled {
		filtering.DisableByName(filters, name, "disabled by configuration")
	}
	logger.Debug("skill filters", zap.Any("filters", filtering.Describe(filters)))

	return &Extractor{
		filters: filters,
		logger:  logger,
	}
}

// Extract returns the skills found in lines scoped to a skills section.
func (e *Extractor) Extract(in []lines.LogicalLine) []string {
	parts := make([]string, 0, len(in))
	for _, l := range in {
		parts = append(parts, stripCategory(l.Text))
	}
	return e.split(strings.Join(parts, "\n"))
}

// Fallback searches "category: items" lines when no skills section exists.
func (e *Extractor) Fallback(in []lines.LogicalLine) []string {
	var parts []string
	for _, l := range in {
		m := categoryRe.FindStringSubmatch(l.Text)
		if m == nil || !isSkillCategory(m[1]) {
			continue
		}
		parts = append(parts, m[2])
	}
	if len(parts) == 0 {
		return nil
	}
	return e.split(strings.Join(parts, "\n"))
}

func (e *Extractor) split(text string) []string {
	splitter := broadSplit
	if strings.Count(text, ",") > commaDense {
		splitter = denseSplit
	}

	raw := splitter.Split(text, -1)
	fragments := make([]string, 0, len(raw))
	for _, r := range raw {
		fragments = append(fragments, strings.TrimSpace(r))
	}

	kept, _ := filtering.Run(e.filters, fragments, e.logger)
	return utils.Dedupe(kept, MaxSkills)
}

// stripCategory removes a short "Label:" prefix from a skills line.
func stripCategory(line string) string {
	if m := categoryRe.FindStringSubmatch(line); m != nil && len(strings.Fields(m[1])) <= 3 {
		return m[2]
	}
	return line
}

func isSkillCategory(label string) bool {
	label = strings.ToLower(label)
	for _, w := range categoryWords {
		if strings.Contains(label, w) {
			return true
		}
	}
	return false
}
