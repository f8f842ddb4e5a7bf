package resume

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/bullets"
	"github.com/spigell/resume-parser/internal/docx"
	"github.com/spigell/resume-parser/internal/language"
	"github.com/spigell/resume-parser/internal/lines"
	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/pdfdoc"
	"github.com/spigell/resume-parser/internal/sections"
	"github.com/spigell/resume-parser/internal/skills"
	"github.com/spigell/resume-parser/internal/taxonomy"
)

// Config tunes a Parser.
type Config struct {
	Layout pdfdoc.Config `mapstructure:"layout"`
	// Quality attaches pdfcpu quality metrics to PDF results.
	Quality bool `mapstructure:"quality"`
	// DisabledSkillFilters names skill noise filters to skip.
	DisabledSkillFilters []string `mapstructure:"disabled-skill-filters"`
}

// Deps wires the collaborators of a Parser. Every field is optional.
type Deps struct {
	Logger     *zap.Logger
	Detector   language.Detector
	Recognizer pdfdoc.Recognizer
	Rasterizer pdfdoc.Rasterizer
	OpenPDF    pdfdoc.Opener
}

// Parser is safe for concurrent use; it holds no per-document state.
type Parser struct {
	pdf      *pdfdoc.Reconstructor
	skills   *skills.Extractor
	detector language.Detector
	quality  bool
	logger   *zap.Logger
}

func New(cfg Config, deps Deps) *Parser {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Detector == nil {
		deps.Detector = language.Whatlang{}
	}

	return &Parser{
		pdf: pdfdoc.New(cfg.Layout, pdfdoc.Deps{
			Open:       deps.OpenPDF,
			Rasterizer: deps.Rasterizer,
			Recognizer: deps.Recognizer,
			Logger:     deps.Logger,
		}),
		skills:   skills.New(deps.Logger, cfg.DisabledSkillFilters...),
		detector: deps.Detector,
		quality:  cfg.Quality,
		logger:   deps.Logger,
	}
}

type document struct {
	lines   []lines.LogicalLine
	path    Path
	quality *pdfdoc.Quality
}

// Parse never fails: every error and panic below it degrades to a Failed
// result, and malformed DOCX input degrades to a printable-text re-parse.
func (p *Parser) Parse(ctx context.Context, filename string, data []byte) (res ParsedResume) {
	log := logger.With(p.logger, append(
		logger.FileFields(filename, len(data)),
		zap.String(logger.FieldParseID, uuid.NewString()),
	)...)

	defer func() {
		if r := recover(); r != nil {
			log.Error("parse panicked", zap.Any("panic", r), zap.Stack("stack"))
			res = Failed()
		}
	}()

	doc, err := p.extract(ctx, filename, data, log)
	if err != nil {
		log.Warn("extraction failed", zap.Error(err))
		return Failed()
	}

	res = p.build(doc, log)

	log.Info("parsed",
		zap.String("extraction_path", string(res.ExtractionPath)),
		zap.Float64("confidence", res.Confidence),
		zap.Int("lines", len(doc.lines)),
		zap.Int("skills", len(res.Skills)),
		zap.Int("experience", len(res.Experience)),
		zap.String("language", res.Language),
	)

	return res
}

// extract dispatches on the file extension.
func (p *Parser) extract(ctx context.Context, filename string, data []byte, log *zap.Logger) (document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		out, err := docx.Lines(data)
		if err != nil {
			log.Warn("docx parsing failed, falling back to printable text",
				zap.Error(err),
				zap.Bool("zip_signature", !errors.Is(err, docx.ErrNotZip)),
			)
			return document{lines: lines.FromText(lines.Printable(data)), path: PathPlainTextFallback}, nil
		}
		return document{lines: out, path: PathDOCX}, nil

	case ".pdf":
		out, err := p.pdf.Extract(ctx, data)
		if err != nil {
			return document{}, fmt.Errorf("pdf: %w", err)
		}
		doc := document{lines: out.Lines, path: PathPDFText}
		if out.OCR {
			doc.path = PathPDFOCR
		}
		if p.quality {
			q, err := pdfdoc.Measure(data, out.Text)
			if err != nil {
				log.Debug("pdf quality metrics unavailable", zap.Error(err))
			}
			doc.quality = q
		}
		log.Debug("pdf extracted",
			zap.Float64("density", out.Density),
			zap.Bool("ocr", out.OCR),
		)
		return doc, nil

	default:
		return document{lines: lines.PlainText(data), path: PathPlainText}, nil
	}
}

func (p *Parser) build(doc document, log *zap.Logger) ParsedResume {
	buckets := sections.Segment(doc.lines, nil)
	log.Debug("segmented", zap.Any("sections", buckets.Order()))

	summary := truncateRunes(strings.Join(lines.Texts(buckets.Lines(taxonomy.Summary)), " "), MaxSummaryRunes)

	var skillList []string
	if buckets.Has(taxonomy.Skills) {
		skillList = p.skills.Extract(buckets.Lines(taxonomy.Skills))
	} else {
		skillList = p.skills.Fallback(buckets.Content())
	}
	if skillList == nil {
		skillList = []string{}
	}

	experience := bullets.Extract(buckets.Lines(taxonomy.Experience))
	if len(experience) == 0 {
		experience = bullets.Extract(buckets.Content())
	}
	if (doc.path == PathPDFText || doc.path == PathPDFOCR) && len(experience) <= 1 {
		if recovered := bullets.Recover(buckets.Lines(taxonomy.Experience)); len(recovered) > len(experience) {
			log.Debug("experience recovered from sentences", zap.Int("bullets", len(recovered)))
			experience = recovered
		}
	}

	code, name := p.detectLanguage(buckets.Content(), log)

	return ParsedResume{
		Summary:        summary,
		Skills:         skillList,
		Experience:     experience,
		Confidence:     Score(summary != "", len(skillList), len(experience)),
		ExtractionPath: doc.path,
		Language:       code,
		LanguageName:   name,
		RawTextPresent: summary != "" || len(experience) > 0,
		Quality:        doc.quality,
	}
}

func (p *Parser) detectLanguage(content []lines.LogicalLine, log *zap.Logger) (string, string) {
	code, err := p.detector.Detect(strings.Join(lines.Texts(content), "\n"))
	if err != nil {
		if !errors.Is(err, language.ErrEmptyText) {
			log.Warn("language detection failed, defaulting", zap.Error(err), zap.String("default", language.Default))
		}
		code = language.Default
	}
	return code, language.Name(code)
}
