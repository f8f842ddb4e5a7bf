// Package docxtest builds minimal DOCX archives for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const footer = `</w:body></w:document>`

// Para renders a plain paragraph.
func Para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + escape(text) + `</w:t></w:r></w:p>`
}

// Numbered renders a paragraph that takes part in a numbering definition.
func Numbered(text string) string {
	return `<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
		`<w:r><w:t>` + escape(text) + `</w:t></w:r></w:p>`
}

// Styled renders a paragraph with the given paragraph style.
func Styled(style, text string) string {
	return `<w:p><w:pPr><w:pStyle w:val="` + escape(style) + `"/></w:pPr>` +
		`<w:r><w:t>` + escape(text) + `</w:t></w:r></w:p>`
}

// Table renders a single-row table with one paragraph per cell.
func Table(cells ...string) string {
	var b strings.Builder
	b.WriteString(`<w:tbl><w:tr>`)
	for _, c := range cells {
		b.WriteString(`<w:tc>` + Para(c) + `</w:tc>`)
	}
	b.WriteString(`</w:tr></w:tbl>`)
	return b.String()
}

// TextBox renders a paragraph whose runs surround a floating text box. The
// box is written twice, as DrawingML and as its VML fallback, the way Word
// saves it.
func TextBox(before, box, after string) string {
	content := `<w:txbxContent>` + Para(box) + `</w:txbxContent>`
	return `<w:p><w:r><w:t xml:space="preserve">` + escape(before) + `</w:t></w:r>` +
		`<w:r><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
		`<mc:Choice Requires="wps"><w:drawing><wps:wsp xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape">` +
		`<wps:txbx>` + content + `</wps:txbx></wps:wsp></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><v:textbox xmlns:v="urn:schemas-microsoft-com:vml">` + content + `</v:textbox></w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>` +
		`<w:r><w:t xml:space="preserve">` + escape(after) + `</w:t></w:r></w:p>`
}

// Document zips body XML into a DOCX payload.
func Document(t testing.TB, body ...string) []byte {
	t.Helper()
	return Archive(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   header + strings.Join(body, "") + footer,
	})
}

// Archive zips arbitrary parts.
func Archive(t testing.TB, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
