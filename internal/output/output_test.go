package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-parser/internal/resume"
)

func sampleResults() *Results {
	r := &Results{}
	r.Add("b.pdf", resume.ParsedResume{
		Summary:        "Engineer",
		Skills:         []string{"Go"},
		Experience:     []string{},
		Confidence:     0.6,
		ExtractionPath: resume.PathPDFOCR,
		Language:       "en",
		LanguageName:   "English",
		RawTextPresent: true,
	})
	r.Add("a.docx", resume.ParsedResume{
		Skills:         []string{},
		Experience:     []string{},
		ExtractionPath: resume.PathPlainTextFallback,
		Language:       "de",
		LanguageName:   "German",
	})
	return r
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	r := sampleResults()

	rows, err := r.Select([]string{"confidence", "extraction_path", "quality"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "a.docx", rows[1]["file"])
	assert.Equal(t, 0.0, rows[1]["confidence"])
	assert.Equal(t, resume.PathPlainTextFallback, rows[1]["extraction_path"])
	assert.Contains(t, rows[1], "quality")
	assert.NotContains(t, rows[1], "summary")

	all, err := r.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", all[0]["summary"])
	assert.Equal(t, []string{"Go"}, all[0]["skills"])

	_, err = r.Select([]string{"salary"})
	assert.ErrorContains(t, err, "unknown field")
}

func TestReportByPath(t *testing.T) {
	report := sampleResults().ReportByPath()

	ocr := report[string(resume.PathPDFOCR)]
	require.Len(t, ocr, 1)
	assert.Equal(t, "b.pdf", ocr[0]["file"])
	assert.Equal(t, "0.60", ocr[0]["confidence"])
	assert.Equal(t, "false", ocr[0]["needs_repair"])
	assert.Equal(t, "1", ocr[0]["skills"])

	fallback := report[string(resume.PathPlainTextFallback)]
	require.Len(t, fallback, 1)
	assert.Equal(t, "true", fallback[0]["needs_repair"])
	assert.Equal(t, "German", fallback[0]["language"])
}

func TestRender(t *testing.T) {
	r := sampleResults()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, r))

	var decoded Results
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, resume.PathPDFOCR, decoded.Items[0].Resume.ExtractionPath)
	assert.NotContains(t, buf.String(), "quality")

	buf.Reset()
	require.NoError(t, Render(&buf, FormatYAML, r))
	assert.True(t, strings.Contains(buf.String(), "extraction_path: pdf_ocr"), buf.String())

	var fromYAML Results
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "b.pdf", fromYAML.Items[0].File)
}

func TestDumpToTmpFile(t *testing.T) {
	name, err := sampleResults().DumpToTmpFile(FormatYAML)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	assert.True(t, strings.HasSuffix(name, ".yaml"))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file: a.docx")
}
