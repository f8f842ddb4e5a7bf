// Package docx reads logical lines from WordprocessingML documents.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/resume-parser/internal/lines"
)

const documentPart = "word/document.xml"

var (
	// ErrNotZip is returned when the payload lacks a ZIP local file header.
	ErrNotZip = errors.New("not a zip archive")
	// ErrNoDocument is returned when the archive has no main document part.
	ErrNoDocument = errors.New(documentPart + " not found in archive")

	zipSignature = []byte("PK\x03\x04")
)

// HasSignature reports whether data starts with a ZIP local file header.
func HasSignature(data []byte) bool {
	return bytes.HasPrefix(data, zipSignature)
}

// Lines extracts body paragraphs in document order followed by table cell
// paragraphs in document order. Numbered and bulleted paragraphs are flagged
// as list items; blank paragraphs are dropped.
func Lines(data []byte) ([]lines.LogicalLine, error) {
	if !HasSignature(data) {
		return nil, ErrNotZip
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, ErrNoDocument
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	body, cells, err := walk(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", documentPart, err)
	}

	return append(body, cells...), nil
}

type paragraph struct {
	text     strings.Builder
	listItem bool
	inText   bool
	// nested holds text box paragraphs anchored inside this one.
	nested []lines.LogicalLine
}

func (p *paragraph) lines() []lines.LogicalLine {
	var out []lines.LogicalLine
	for i, raw := range strings.Split(p.text.String(), "\n") {
		// Only the first visual line of a list paragraph carries the marker.
		if l, ok := lines.New(raw, p.listItem && i == 0); ok {
			out = append(out, l)
		}
	}
	return append(out, p.nested...)
}

// walk streams the document part and returns body and table paragraphs
// separately. Paragraphs nested in text boxes follow their anchor paragraph;
// the VML fallback copy of a text box is skipped.
func walk(r io.Reader) (body, cells []lines.LogicalLine, err error) {
	decoder := xml.NewDecoder(r)

	var (
		tableDepth int
		stack      []*paragraph
	)
	current := func() *paragraph {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p := current()
			switch t.Name.Local {
			case "Fallback":
				if err := decoder.Skip(); err != nil {
					return nil, nil, err
				}
			case "tbl":
				tableDepth++
			case "p":
				stack = append(stack, &paragraph{})
			case "pStyle":
				if p != nil && strings.HasPrefix(attr(t, "val"), "List") {
					p.listItem = true
				}
			case "numId":
				if p != nil {
					if v := attr(t, "val"); v != "" && v != "0" {
						p.listItem = true
					}
				}
			case "t":
				if p != nil {
					p.inText = true
				}
			case "tab":
				if p != nil {
					p.text.WriteByte(' ')
				}
			case "br", "cr":
				if p != nil {
					p.text.WriteByte('\n')
				}
			}

		case xml.CharData:
			if p := current(); p != nil && p.inText {
				p.text.Write(t)
			}

		case xml.EndElement:
			p := current()
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "t":
				if p != nil {
					p.inText = false
				}
			case "p":
				if p == nil {
					continue
				}
				stack = stack[:len(stack)-1]
				switch {
				case len(stack) > 0:
					parent := stack[len(stack)-1]
					parent.nested = append(parent.nested, p.lines()...)
				case tableDepth > 0:
					cells = append(cells, p.lines()...)
				default:
					body = append(body, p.lines()...)
				}
			}
		}
	}

	return body, cells, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
