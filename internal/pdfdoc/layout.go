package pdfdoc

import (
	"math"
	"sort"
	"strings"
)

// TwoColumn reports whether more than fraction of the blocks are centered in
// the right half of the page.
func TwoColumn(p Page, fraction float64) bool {
	if len(p.Blocks) == 0 || p.Width <= 0 {
		return false
	}
	mid := p.Width / 2
	right := 0
	for _, b := range p.Blocks {
		if b.CenterX() > mid {
			right++
		}
	}
	return float64(right)/float64(len(p.Blocks)) > fraction
}

// Order returns block texts in reading order. On two-column pages the whole
// left column precedes the right one regardless of vertical position.
func Order(p Page, fraction float64) []string {
	blocks := make([]Block, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		if strings.TrimSpace(b.Text) != "" {
			blocks = append(blocks, b)
		}
	}

	page := Page{Width: p.Width, Height: p.Height, Blocks: blocks}
	if !TwoColumn(page, fraction) {
		return texts(sortBlocks(blocks))
	}

	mid := p.Width / 2
	var left, right []Block
	for _, b := range blocks {
		if b.CenterX() > mid {
			right = append(right, b)
		} else {
			left = append(left, b)
		}
	}
	return append(texts(sortBlocks(left)), texts(sortBlocks(right))...)
}

// sortBlocks orders blocks top to bottom, then left to right, on rounded
// coordinates.
func sortBlocks(in []Block) []Block {
	sort.SliceStable(in, func(i, j int) bool {
		yi, yj := math.Round(in[i].Y), math.Round(in[j].Y)
		if yi != yj {
			return yi < yj
		}
		return math.Round(in[i].X) < math.Round(in[j].X)
	})
	return in
}

func texts(in []Block) []string {
	out := make([]string, len(in))
	for i, b := range in {
		out[i] = b.Text
	}
	return out
}
