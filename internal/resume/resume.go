// Package resume turns uploaded résumé files into a structured ParsedResume.
package resume

import (
	"math"
	"strings"

	"github.com/spigell/resume-parser/internal/language"
	"github.com/spigell/resume-parser/internal/pdfdoc"
)

// Path identifies the extraction chain that produced a result.
type Path string

const (
	PathDOCX              Path = "docx"
	PathPDFText           Path = "pdf_text"
	PathPDFOCR            Path = "pdf_ocr"
	PathPlainText         Path = "plain_text"
	PathPlainTextFallback Path = "plain_text_fallback"
	PathError             Path = "error"
)

const (
	// MaxSummaryRunes bounds the summary length.
	MaxSummaryRunes = 1000
	// RepairThreshold is the confidence under which a result should be repaired downstream.
	RepairThreshold = 0.6
)

// ParsedResume is the structured representation of one document.
type ParsedResume struct {
	Summary        string          `json:"summary" yaml:"summary" mapstructure:"summary"`
	Skills         []string        `json:"skills" yaml:"skills" mapstructure:"skills"`
	Experience     []string        `json:"experience" yaml:"experience" mapstructure:"experience"`
	Confidence     float64         `json:"confidence" yaml:"confidence" mapstructure:"confidence"`
	ExtractionPath Path            `json:"extraction_path" yaml:"extraction_path" mapstructure:"extraction_path"`
	Language       string          `json:"language" yaml:"language" mapstructure:"language"`
	LanguageName   string          `json:"language_name" yaml:"language_name" mapstructure:"language_name"`
	RawTextPresent bool            `json:"raw_text_present" yaml:"raw_text_present" mapstructure:"raw_text_present"`
	Quality        *pdfdoc.Quality `json:"quality,omitempty" yaml:"quality,omitempty" mapstructure:"quality,omitempty"`
}

// Failed is the well-formed result of an unrecoverable parse.
func Failed() ParsedResume {
	return ParsedResume{
		Skills:         []string{},
		Experience:     []string{},
		ExtractionPath: PathError,
		Language:       language.Default,
		LanguageName:   language.Name(language.Default),
	}
}

// Score is the additive confidence of a result: 0.35 for a summary, 0.25 for
// any skills, 0.25 for five or more bullets and 0.15 more for ten or more.
func Score(hasSummary bool, skills, bullets int) float64 {
	score := 0.0
	if hasSummary {
		score += 0.35
	}
	if skills > 0 {
		score += 0.25
	}
	if bullets >= 5 {
		score += 0.25
	}
	if bullets >= 10 {
		score += 0.15
	}
	return math.Round(score*100) / 100
}

// NeedsRepair reports whether the confidence is below RepairThreshold.
func (r ParsedResume) NeedsRepair() bool {
	return r.Confidence < RepairThreshold
}

// Text flattens the result: summary, comma-joined skills, then one bullet per line.
func (r ParsedResume) Text() string {
	parts := make([]string, 0, 3)
	if r.Summary != "" {
		parts = append(parts, r.Summary)
	}
	if len(r.Skills) > 0 {
		parts = append(parts, strings.Join(r.Skills, ", "))
	}
	if len(r.Experience) > 0 {
		parts = append(parts, strings.Join(r.Experience, "\n"))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}
