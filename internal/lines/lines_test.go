package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		listItem bool
		want     LogicalLine
		ok       bool
	}{
		{name: "plain", raw: "  Built   data   pipelines ", want: LogicalLine{Text: "Built data pipelines"}, ok: true},
		{name: "dash bullet", raw: "- Built pipelines", want: LogicalLine{Text: "Built pipelines", ListItem: true}, ok: true},
		{name: "dot bullet", raw: "• Built pipelines", want: LogicalLine{Text: "Built pipelines", ListItem: true}, ok: true},
		{name: "numbered", raw: "12. Built pipelines", want: LogicalLine{Text: "Built pipelines", ListItem: true}, ok: true},
		{name: "nested markers", raw: "• - Built pipelines", want: LogicalLine{Text: "Built pipelines", ListItem: true}, ok: true},
		{name: "flag kept", raw: "Built pipelines", listItem: true, want: LogicalLine{Text: "Built pipelines", ListItem: true}, ok: true},
		{name: "negative number is not a marker", raw: "-15% cloud spend", want: LogicalLine{Text: "-15% cloud spend"}, ok: true},
		{name: "year is not a marker", raw: "2019 - 2021", want: LogicalLine{Text: "2019 - 2021"}, ok: true},
		{name: "ligature", raw: "ﬁnance", want: LogicalLine{Text: "finance"}, ok: true},
		{name: "blank", raw: " \t ", ok: false},
		{name: "bare marker", raw: "• ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := New(tt.raw, tt.listItem)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromText(t *testing.T) {
	t.Parallel()

	got := FromText("Jane Doe\r\n\r\nSUMMARY\r- Shipped   things\n\n   \nDone")
	assert.Equal(t, []LogicalLine{
		{Text: "Jane Doe"},
		{Text: "SUMMARY"},
		{Text: "Shipped things", ListItem: true},
		{Text: "Done"},
	}, got)
}

func TestJoinHyphenated(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "implemented\nnext", JoinHyphenated("imple-\nmented\nnext"))
	assert.Equal(t, "range 10 -\n20", JoinHyphenated("range 10 -\n20"))
	assert.Equal(t, "no-wrap here", JoinHyphenated("no-wrap here"))
}

func TestStringAndTexts(t *testing.T) {
	t.Parallel()

	in := []LogicalLine{{Text: "Skills"}, {Text: "Go", ListItem: true}}
	assert.Equal(t, "• Go", in[1].String())
	assert.Equal(t, []string{"Skills", "Go"}, Texts(in))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	utf16 := []byte{0xFF, 0xFE, 'H', 0, 'i', 0}
	assert.Equal(t, "Hi", Decode(utf16))

	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Résumé")...)
	assert.Equal(t, "Résumé", Decode(bom))

	assert.Equal(t, "ab", Decode([]byte{'a', 0xFF, 'b'}))
}

func TestPrintable(t *testing.T) {
	t.Parallel()

	got := Printable([]byte("PK\x03\x04\x00\x01Summary\nBuilt\tthings"))
	assert.Equal(t, "PK    Summary\nBuilt things", got)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	got := PlainText([]byte("Skills\nPython, SQL\n"))
	require.Len(t, got, 2)
	assert.Equal(t, "Python, SQL", got[1].Text)
}
