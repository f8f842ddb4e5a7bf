// Package sections buckets logical lines under canonical résumé headings.
package sections

import (
	"github.com/spigell/resume-parser/internal/lines"
	"github.com/spigell/resume-parser/internal/taxonomy"
)

// HeadingMatcher classifies a line as a heading.
type HeadingMatcher func(line string) (taxonomy.Section, bool)

// Buckets is the ordered mapping of sections to their content lines.
type Buckets struct {
	order   []taxonomy.Section
	lines   map[taxonomy.Section][]lines.LogicalLine
	content []lines.LogicalLine
}

// Segment walks the lines once, switching the current section on every heading.
// Heading lines are consumed. List items are matched on their text without
// the marker, so numbered headings like "1. Education" still switch sections.
// A nil matcher uses the process-wide taxonomy.
func Segment(in []lines.LogicalLine, match HeadingMatcher) *Buckets {
	if match == nil {
		match = taxonomy.Match
	}

	b := &Buckets{lines: make(map[taxonomy.Section][]lines.LogicalLine)}
	current := taxonomy.Other
	b.ensure(current)

	for _, line := range in {
		if section, ok := match(line.Text); ok {
			current = section
			b.ensure(current)
			continue
		}
		b.lines[current] = append(b.lines[current], line)
		b.content = append(b.content, line)
	}

	return b
}

func (b *Buckets) ensure(s taxonomy.Section) {
	if _, ok := b.lines[s]; ok {
		return
	}
	b.lines[s] = []lines.LogicalLine{}
	b.order = append(b.order, s)
}

// Lines returns the content lines of a section.
func (b *Buckets) Lines(s taxonomy.Section) []lines.LogicalLine {
	return b.lines[s]
}

// Has reports whether a heading for s was seen (Other is always present).
func (b *Buckets) Has(s taxonomy.Section) bool {
	_, ok := b.lines[s]
	return ok
}

// Order returns the sections in the order they were first seen.
func (b *Buckets) Order() []taxonomy.Section {
	return b.order
}

// Content returns every non-heading line in document order.
func (b *Buckets) Content() []lines.LogicalLine {
	return b.content
}
