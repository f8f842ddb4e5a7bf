package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-parser/internal/lines"
	"github.com/spigell/resume-parser/internal/taxonomy"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	in := lines.FromText(`Jane Doe
jane@example.com
PROFESSIONAL SUMMARY
Data engineer with eight years of experience.
Skills:
Python, SQL
Experience
- Built streaming pipelines for payments
- Cut warehouse cost by 30 percent
Summery
Second summary line`)

	b := Segment(in, nil)

	assert.Equal(t, []taxonomy.Section{taxonomy.Other, taxonomy.Summary, taxonomy.Skills, taxonomy.Experience}, b.Order())
	assert.Equal(t, []string{"Jane Doe", "jane@example.com"}, lines.Texts(b.Lines(taxonomy.Other)))
	assert.Equal(t, []string{"Data engineer with eight years of experience.", "Second summary line"}, lines.Texts(b.Lines(taxonomy.Summary)))
	assert.Equal(t, []string{"Python, SQL"}, lines.Texts(b.Lines(taxonomy.Skills)))

	exp := b.Lines(taxonomy.Experience)
	require.Len(t, exp, 2)
	assert.True(t, exp[0].ListItem)

	assert.True(t, b.Has(taxonomy.Skills))
	assert.False(t, b.Has(taxonomy.Education))
	assert.Len(t, b.Content(), 7)
}

func TestSegmentEmptyHeadingCreatesBucket(t *testing.T) {
	t.Parallel()

	b := Segment(lines.FromText("Education\nProjects"), nil)

	assert.True(t, b.Has(taxonomy.Education))
	assert.True(t, b.Has(taxonomy.Projects))
	assert.Empty(t, b.Lines(taxonomy.Education))
	assert.Empty(t, b.Content())
}

func TestSegmentListItemHeadings(t *testing.T) {
	t.Parallel()

	b := Segment([]lines.LogicalLine{
		{Text: "Education", ListItem: true},
		{Text: "MSc Computer Science, TU Berlin", ListItem: true},
		{Text: "Skills", ListItem: true},
		{Text: "Go", ListItem: true},
	}, nil)

	assert.Equal(t, []taxonomy.Section{taxonomy.Other, taxonomy.Education, taxonomy.Skills}, b.Order())
	assert.Equal(t, []string{"MSc Computer Science, TU Berlin"}, lines.Texts(b.Lines(taxonomy.Education)))
	assert.Equal(t, []string{"Go"}, lines.Texts(b.Lines(taxonomy.Skills)))
	assert.Empty(t, b.Lines(taxonomy.Other))
}

func TestSegmentCustomMatcher(t *testing.T) {
	t.Parallel()

	match := func(line string) (taxonomy.Section, bool) {
		if line == "## work" {
			return taxonomy.Experience, true
		}
		return "", false
	}

	b := Segment(lines.FromText("## work\nShipped it"), match)
	assert.Equal(t, []string{"Shipped it"}, lines.Texts(b.Lines(taxonomy.Experience)))
}
