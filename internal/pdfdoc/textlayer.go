package pdfdoc

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// rowTolerance is the share of the font size within which glyphs share a row.
	rowTolerance = 0.5
	// spaceGap is the share of the font size that reads as a word gap.
	spaceGap = 0.25
	// blockGap is the share of the font size that splits a row into blocks.
	blockGap = 2.0
)

type ledongthucLayer struct {
	r *pdf.Reader
}

// OpenTextLayer decodes data with github.com/ledongthuc/pdf.
func OpenTextLayer(data []byte) (layer TextLayer, err error) {
	defer func() {
		if r := recover(); r != nil {
			layer, err = nil, fmt.Errorf("%w: %v", ErrNoTextLayer, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTextLayer, err)
	}
	return &ledongthucLayer{r: r}, nil
}

func (l *ledongthucLayer) NumPages() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return l.r.NumPage()
}

func (l *ledongthucLayer) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v", i+1, r)
		}
	}()

	p := l.r.Page(i + 1)
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d not found", i+1)
	}
	return p.GetPlainText(nil)
}

func (l *ledongthucLayer) PlainText() (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("plain text: %v", r)
		}
	}()

	rd, err := l.r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rd); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (l *ledongthucLayer) Page(i int) (page Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = Page{}, fmt.Errorf("page %d: %v", i+1, r)
		}
	}()

	p := l.r.Page(i + 1)
	if p.V.IsNull() {
		return Page{}, fmt.Errorf("page %d not found", i+1)
	}

	width, height := mediaBox(p.V)
	glyphs := p.Content().Text
	if height == 0 {
		for _, g := range glyphs {
			width = math.Max(width, g.X+g.W)
			height = math.Max(height, g.Y+g.FontSize)
		}
	}

	return Page{
		Width:  width,
		Height: height,
		Blocks: blocks(glyphs, height),
	}, nil
}

// mediaBox walks up the page tree until a MediaBox is found.
func mediaBox(v pdf.Value) (width, height float64) {
	for depth := 0; depth < 8 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return box.Index(2).Float64() - box.Index(0).Float64(),
				box.Index(3).Float64() - box.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	return 0, 0
}

// blocks groups glyphs into rows and splits rows on wide gaps. The PDF
// bottom-left origin is flipped to a top-left one.
func blocks(glyphs []pdf.Text, height float64) []Block {
	glyphs = append([]pdf.Text(nil), glyphs...)
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	var rows [][]pdf.Text
	for _, g := range glyphs {
		if n := len(rows); n > 0 {
			head := rows[n-1][0]
			if math.Abs(head.Y-g.Y) <= math.Max(head.FontSize*rowTolerance, 1) {
				rows[n-1] = append(rows[n-1], g)
				continue
			}
		}
		rows = append(rows, []pdf.Text{g})
	}

	var out []Block
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		out = append(out, splitRow(row, height)...)
	}
	return out
}

func splitRow(row []pdf.Text, height float64) []Block {
	var (
		out  []Block
		text strings.Builder
		cur  Block
		end  float64
	)

	emit := func() {
		cur.Text = strings.TrimSpace(text.String())
		if cur.Text != "" {
			cur.W = end - cur.X
			out = append(out, cur)
		}
		text.Reset()
	}

	for i, g := range row {
		size := math.Max(g.FontSize, 1)
		if i > 0 {
			gap := g.X - end
			if gap > size*blockGap {
				emit()
			} else if gap > size*spaceGap && !strings.HasSuffix(text.String(), " ") {
				text.WriteByte(' ')
			}
		}
		if text.Len() == 0 {
			cur = Block{X: g.X, Y: height - g.Y - size, H: size}
			end = g.X
		}
		text.WriteString(g.S)
		end = math.Max(end, g.X+g.W)
	}
	emit()

	return out
}
