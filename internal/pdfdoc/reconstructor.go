package pdfdoc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/lines"
)

// Result is the outcome of reconstructing one document.
type Result struct {
	Lines []lines.LogicalLine
	// OCR is set when the text came from page recognition.
	OCR bool
	// Density is the average chars per page seen by the probe.
	Density float64
	// Text is the flat text the lines were built from.
	Text string
}

// Deps wires the collaborators of a Reconstructor.
type Deps struct {
	Open       Opener
	Rasterizer Rasterizer
	Recognizer Recognizer
	Logger     *zap.Logger
}

// Reconstructor turns PDF bytes into logical lines.
type Reconstructor struct {
	cfg        Config
	open       Opener
	rasterizer Rasterizer
	recognizer Recognizer
	logger     *zap.Logger
}

// New creates a Reconstructor. Missing dependencies fall back to the
// ledongthuc text layer and the MuPDF rasterizer; a nil Recognizer turns OCR
// into a no-op.
func New(cfg Config, deps Deps) *Reconstructor {
	if deps.Open == nil {
		deps.Open = OpenTextLayer
	}
	if deps.Rasterizer == nil {
		deps.Rasterizer = FitzRasterizer{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Reconstructor{
		cfg:        cfg.withDefaults(),
		open:       deps.Open,
		rasterizer: deps.Rasterizer,
		recognizer: deps.Recognizer,
		logger:     deps.Logger,
	}
}

// Extract probes the text layer and either lays out its blocks or runs OCR.
func (r *Reconstructor) Extract(ctx context.Context, data []byte) (Result, error) {
	layer, err := r.open(data)
	if err != nil {
		r.logger.Debug("text layer unavailable, using OCR", zap.Error(err))
		return r.ocr(ctx, data)
	}

	density := Density(layer, r.cfg.DensityPages)
	if density < r.cfg.DensityThreshold {
		r.logger.Debug("sparse text layer, using OCR",
			zap.Float64("density", density),
			zap.Float64("threshold", r.cfg.DensityThreshold),
		)
		res, err := r.ocr(ctx, data)
		res.Density = density
		return res, err
	}

	text := r.layout(layer)
	out := lines.FromText(text)
	if len(out) < r.cfg.MinTextLines {
		raw, err := layer.PlainText()
		if err != nil {
			r.logger.Warn("raw text extraction failed", zap.Error(err))
		} else {
			r.logger.Debug("layout recovered too few lines, using raw text", zap.Int("lines", len(out)))
			text = lines.JoinHyphenated(raw)
			out = lines.FromText(text)
		}
	}

	return Result{Lines: out, Density: density, Text: text}, nil
}

// Density is the average number of characters on the first pages of layer.
func Density(layer TextLayer, pages int) float64 {
	n := min(pages, layer.NumPages())
	if n <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		text, err := layer.PageText(i)
		if err != nil {
			continue
		}
		total += len([]rune(text))
	}
	return float64(total) / float64(n)
}

func (r *Reconstructor) layout(layer TextLayer) string {
	var sb strings.Builder
	for i := 0; i < layer.NumPages(); i++ {
		page, err := layer.Page(i)
		if err != nil {
			r.logger.Debug("skipping page", zap.Int("page", i+1), zap.Error(err))
			continue
		}
		ordered := Order(page, r.cfg.TwoColumnFraction)
		if len(ordered) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(ordered, "\n"))
	}
	return lines.JoinHyphenated(sb.String())
}

func (r *Reconstructor) ocr(ctx context.Context, data []byte) (Result, error) {
	if r.recognizer == nil {
		r.logger.Warn("no OCR engine configured, image-only document yields no text")
		return Result{Lines: []lines.LogicalLine{}, OCR: true}, nil
	}

	var pages []string
	err := r.rasterizer.RenderPages(ctx, data, r.cfg.OCRDPI, func(page int, png []byte) error {
		text, err := r.recognizer.Recognize(ctx, png)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.logger.Warn("OCR failed for page", zap.Int("page", page+1), zap.Error(err))
			return nil
		}
		pages = append(pages, text)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{OCR: true}, fmt.Errorf("ocr: %w", err)
		}
		r.logger.Warn("OCR failed, image-only document yields no text", zap.Error(err))
		return Result{Lines: []lines.LogicalLine{}, OCR: true}, nil
	}

	text := strings.Join(pages, "\n")
	return Result{Lines: lines.FromText(text), OCR: true, Text: text}, nil
}
