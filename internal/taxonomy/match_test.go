package taxonomy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		want    Section
		matched bool
	}{
		{name: "exact", line: "Summary", want: Summary, matched: true},
		{name: "misspelling table", line: "Summery", want: Summary, matched: true},
		{name: "misspelling mapped through corrected phrase", line: "Work Experiance", want: Experience, matched: true},
		{name: "trailing colon", line: "Technical Skills:", want: Skills, matched: true},
		{name: "trailing dash", line: "Education —", want: Education, matched: true},
		{name: "collapsed whitespace", line: "  work    history ", want: Experience, matched: true},
		{name: "all caps", line: "EXPERIENCE", want: Experience, matched: true},
		{name: "fuzzy typo", line: "Certificatons", want: Certifications, matched: true},
		{name: "localized", line: "Berufserfahrung", want: Experience, matched: true},
		{name: "all caps retry is looser", line: "EDUKASION", want: Education, matched: true},
		{name: "lower case below cutoff", line: "edukasion", matched: false},
		{name: "title case gets no retry", line: "Edukasion", matched: false},
		{name: "ends with period", line: "Experience.", matched: false},
		{name: "body text", line: "Led migration of billing platform to Kubernetes", matched: false},
		{name: "empty", line: "   ", matched: false},
		{name: "too long", line: "Professional summary of everything I have ever done in my whole career", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Match(tt.line)
			require.Equal(t, tt.matched, ok, "line %q", tt.line)
			if tt.matched {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"summary", "SUMMARY", "Summary", "sUmMaRy", "SUMMERY", "summery"} {
		got, ok := Match(line)
		require.True(t, ok, "line %q", line)
		assert.Equal(t, Summary, got, "line %q", line)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "work experience", Normalize("  Work   Experience:-  "))
	assert.Equal(t, "skills & tools", Normalize("SKILLS & TOOLS –"))
	assert.Equal(t, "", Normalize(" :: "))
}

func TestClosest(t *testing.T) {
	t.Parallel()

	got, ok := Closest("experiense", []string{"education", "experience", "projects"}, Cutoff)
	require.True(t, ok)
	assert.Equal(t, "experience", got)

	_, ok = Closest("kubernetes", []string{"education", "experience"}, Cutoff)
	assert.False(t, ok)

	_, ok = Closest("anything", nil, Cutoff)
	assert.False(t, ok)
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, Similarity("skills", "skills"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1-1.0/7, Similarity("summery", "summary"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestTableIsSharedAndComplete(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	tables := make([]*Aliases, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i] = Table()
		}(i)
	}
	wg.Wait()

	for _, table := range tables {
		require.Same(t, tables[0], table)
	}

	table := Table()
	for wrong := range misspellings {
		_, ok := table.bucket[wrong]
		assert.True(t, ok, "misspelling %q not registered", wrong)
	}
	for section, names := range canonical {
		for _, name := range names {
			got, ok := table.bucket[name]
			require.True(t, ok, name)
			assert.Equal(t, section, got, name)
		}
	}
	assert.Len(t, table.keys, len(table.bucket))
}
