package pdfdoc

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders pages with MuPDF through github.com/gen2brain/go-fitz.
type FitzRasterizer struct{}

// RenderPages renders one page at a time so only a single page image is held
// in memory.
func (FitzRasterizer) RenderPages(ctx context.Context, data []byte, dpi float64, fn func(page int, png []byte) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rasterize: %v", r)
		}
	}()

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return fmt.Errorf("render page %d: %w", i+1, err)
		}
		if err := fn(i, img); err != nil {
			return err
		}
	}
	return nil
}
