// Package output collects parse results and renders them for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-parser/internal/resume"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a configured format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Result is the parse outcome of one file.
type Result struct {
	File   string              `json:"file" yaml:"file"`
	Resume resume.ParsedResume `json:"resume" yaml:"resume"`
}

// Results is an ordered collection of parse outcomes.
type Results struct {
	Items []*Result `json:"items" yaml:"items"`
}

func (r *Results) Len() int {
	return len(r.Items)
}

// Add appends a result.
func (r *Results) Add(file string, parsed resume.ParsedResume) {
	r.Items = append(r.Items, &Result{File: file, Resume: parsed})
}

// Select projects every result onto the requested ParsedResume fields. The
// file name is always kept. No fields means all of them.
func (r *Results) Select(fields []string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(r.Items))
	for _, item := range r.Items {
		var all map[string]any
		if err := mapstructure.Decode(item.Resume, &all); err != nil {
			return nil, fmt.Errorf("decode %s: %w", item.File, err)
		}

		row := map[string]any{"file": item.File}
		if len(fields) == 0 {
			for k, v := range all {
				row[k] = v
			}
			out = append(out, row)
			continue
		}

		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, ok := all[f]
			if !ok && !isField(f) {
				return nil, fmt.Errorf("unknown field %q (valid: %s)", f, strings.Join(Fields(), ", "))
			}
			row[f] = v
		}
		out = append(out, row)
	}
	return out, nil
}

// ReportByPath groups results by extraction path.
func (r *Results) ReportByPath() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range r.Items {
		key := string(item.Resume.ExtractionPath)
		report[key] = append(report[key], map[string]string{
			"file":         item.File,
			"confidence":   strconv.FormatFloat(item.Resume.Confidence, 'f', 2, 64),
			"needs_repair": strconv.FormatBool(item.Resume.NeedsRepair()),
			"language":     item.Resume.LanguageName,
			"skills":       strconv.Itoa(len(item.Resume.Skills)),
			"experience":   strconv.Itoa(len(item.Resume.Experience)),
		})
	}
	return report
}

// DumpToTmpFile writes the results into a new temporary file and returns its name.
func (r *Results) DumpToTmpFile(format Format) (string, error) {
	file, err := os.CreateTemp("", "resumes_*."+string(format))
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Render(file, format, r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Render encodes v in the given format.
func Render(w io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// Fields lists the selectable ParsedResume fields.
func Fields() []string {
	return []string{
		"summary", "skills", "experience", "confidence", "extraction_path",
		"language", "language_name", "raw_text_present", "quality",
	}
}

func isField(name string) bool {
	for _, f := range Fields() {
		if f == name {
			return true
		}
	}
	return false
}
