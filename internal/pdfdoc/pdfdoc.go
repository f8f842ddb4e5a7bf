// Package pdfdoc reconstructs reading order from PDF documents. Pages with a
// usable text layer are laid out from positioned text blocks, and image-only
// documents are rasterized and sent through an OCR engine.
package pdfdoc

import (
	"context"
	"errors"
)

// ErrNoTextLayer is returned when a document has no decodable text layer.
var ErrNoTextLayer = errors.New("pdf has no usable text layer")

// Config holds the tuning constants of the reconstructor.
type Config struct {
	// DensityThreshold is the average chars per page under which OCR is used.
	DensityThreshold float64 `mapstructure:"density-threshold"`
	// DensityPages is the number of leading pages inspected by the probe.
	DensityPages int `mapstructure:"density-pages"`
	// TwoColumnFraction is the share of right-half blocks that marks a page as two-column.
	TwoColumnFraction float64 `mapstructure:"two-column-fraction"`
	// MinTextLines is the line count under which raw text extraction is used.
	MinTextLines int `mapstructure:"min-text-lines"`
	// OCRDPI is the rasterization resolution.
	OCRDPI float64 `mapstructure:"ocr-dpi"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		DensityThreshold:  20,
		DensityPages:      3,
		TwoColumnFraction: 0.3,
		MinTextLines:      5,
		OCRDPI:            200,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DensityThreshold <= 0 {
		c.DensityThreshold = d.DensityThreshold
	}
	if c.DensityPages <= 0 {
		c.DensityPages = d.DensityPages
	}
	if c.TwoColumnFraction <= 0 {
		c.TwoColumnFraction = d.TwoColumnFraction
	}
	if c.MinTextLines <= 0 {
		c.MinTextLines = d.MinTextLines
	}
	if c.OCRDPI <= 0 {
		c.OCRDPI = d.OCRDPI
	}
	return c
}

// Block is a positioned run of text. Coordinates use a top-left origin.
type Block struct {
	X, Y, W, H float64
	Text       string
}

// CenterX is the horizontal center of the block.
func (b Block) CenterX() float64 {
	return b.X + b.W/2
}

// Page is a page of positioned blocks.
type Page struct {
	Width, Height float64
	Blocks        []Block
}

// TextLayer gives access to the text of a PDF. Page indexes are zero-based.
type TextLayer interface {
	NumPages() int
	Page(i int) (Page, error)
	PageText(i int) (string, error)
	PlainText() (string, error)
}

// Opener decodes a PDF into a TextLayer.
type Opener func(data []byte) (TextLayer, error)

// Rasterizer renders pages to PNG images, calling fn once per page in order.
type Rasterizer interface {
	RenderPages(ctx context.Context, data []byte, dpi float64, fn func(page int, png []byte) error) error
}

// Recognizer runs text recognition on a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}
