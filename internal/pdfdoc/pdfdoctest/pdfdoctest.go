// Package pdfdoctest provides in-memory PDF collaborators for tests.
package pdfdoctest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/resume-parser/internal/pdfdoc"
)

// Layer is a TextLayer backed by fixed pages.
type Layer struct {
	Pages []pdfdoc.Page
	// Raw is returned by PlainText.
	Raw string
}

// Opener returns an Opener that always yields l.
func (l *Layer) Opener() pdfdoc.Opener {
	return func([]byte) (pdfdoc.TextLayer, error) { return l, nil }
}

func (l *Layer) NumPages() int { return len(l.Pages) }

func (l *Layer) Page(i int) (pdfdoc.Page, error) {
	if i < 0 || i >= len(l.Pages) {
		return pdfdoc.Page{}, fmt.Errorf("page %d not found", i+1)
	}
	return l.Pages[i], nil
}

func (l *Layer) PageText(i int) (string, error) {
	p, err := l.Page(i)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range p.Blocks {
		sb.WriteString(b.Text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (l *Layer) PlainText() (string, error) { return l.Raw, nil }

// Column lays texts out as one block per row starting at x.
func Column(x, width float64, texts ...string) []pdfdoc.Block {
	out := make([]pdfdoc.Block, 0, len(texts))
	for i, t := range texts {
		out = append(out, pdfdoc.Block{X: x, Y: 72 + float64(i)*14, W: width, H: 12, Text: t})
	}
	return out
}

// FailingOpener rejects every document.
func FailingOpener([]byte) (pdfdoc.TextLayer, error) {
	return nil, pdfdoc.ErrNoTextLayer
}

// Rasterizer emits a fixed number of fake page images.
type Rasterizer struct {
	Pages int
	Err   error
	DPI   float64
}

func (r *Rasterizer) RenderPages(ctx context.Context, _ []byte, dpi float64, fn func(int, []byte) error) error {
	r.DPI = dpi
	if r.Err != nil {
		return r.Err
	}
	for i := 0; i < r.Pages; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(i, []byte("page-"+strconv.Itoa(i))); err != nil {
			return err
		}
	}
	return nil
}

// Recognizer maps fake page images to text.
type Recognizer struct {
	Text  map[string]string
	Fail  map[string]bool
	Calls int
}

func (r *Recognizer) Recognize(_ context.Context, image []byte) (string, error) {
	r.Calls++
	if r.Fail[string(image)] {
		return "", errors.New("recognition failed")
	}
	return r.Text[string(image)], nil
}

// Minimal builds a single-page PDF with one line of Helvetica text per entry.
func Minimal(text ...string) []byte {
	var stream strings.Builder
	stream.WriteString("BT\n/F1 12 Tf\n14 TL\n72 720 Td\n")
	for _, t := range text {
		t = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(t)
		stream.WriteString("(" + t + ") Tj\nT*\n")
	}
	stream.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		"<< /Length " + strconv.Itoa(stream.Len()) + " >>\nstream\n" + stream.String() + "\nendstream",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		b.WriteString(strconv.Itoa(i+1) + " 0 obj\n" + obj + "\nendobj\n")
	}

	xref := b.Len()
	b.WriteString("xref\n0 " + strconv.Itoa(len(objects)+1) + "\n")
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		b.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	b.WriteString("trailer\n<< /Size " + strconv.Itoa(len(objects)+1) + " /Root 1 0 R >>\n")
	b.WriteString("startxref\n" + strconv.Itoa(xref) + "\n%%EOF\n")

	return []byte(b.String())
}
