package pdfdoc

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	api.DisableConfigDir()
}

// Quality captures metrics about a PDF and the text recovered from it.
type Quality struct {
	PageCount       int     `json:"page_count" yaml:"page_count" mapstructure:"page_count"`
	CharsPerPage    float64 `json:"chars_per_page" yaml:"chars_per_page" mapstructure:"chars_per_page"`
	PrintableRatio  float64 `json:"printable_ratio" yaml:"printable_ratio" mapstructure:"printable_ratio"`
	WordlikeRatio   float64 `json:"wordlike_ratio" yaml:"wordlike_ratio" mapstructure:"wordlike_ratio"`
	HasImageStreams bool    `json:"has_image_streams" yaml:"has_image_streams" mapstructure:"has_image_streams"`
}

// Measure inspects the PDF structure with pdfcpu and scores the recovered text.
func Measure(data []byte, text string) (q *Quality, err error) {
	defer func() {
		if r := recover(); r != nil {
			q, err = nil, fmt.Errorf("measure: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	q = &Quality{
		PageCount:       ctx.PageCount,
		PrintableRatio:  round(printableRatio(text)),
		WordlikeRatio:   round(wordlikeRatio(text)),
		HasImageStreams: hasImageStreams(ctx),
	}
	if ctx.PageCount > 0 {
		q.CharsPerPage = round(float64(len([]rune(text))) / float64(ctx.PageCount))
	}
	return q, nil
}

func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

// printableRatio excludes private use, replacement and control runes.
func printableRatio(text string) float64 {
	total, printable := 0, 0
	for _, r := range text {
		total++
		switch {
		case r >= 0xE000 && r <= 0xF8FF, r == unicode.ReplacementChar:
		case r == '\n' || r == '\r' || r == '\t' || unicode.IsPrint(r):
			printable++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(printable) / float64(total)
}

// wordlikeRatio is the share of tokens between 2 and 15 runes long.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	n := 0
	for _, f := range fields {
		if l := len([]rune(f)); l >= 2 && l <= 15 {
			n++
		}
	}
	return float64(n) / float64(len(fields))
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
