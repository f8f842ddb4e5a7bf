package lines

import (
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw bytes into text on a best-effort basis. A UTF-8 or UTF-16
// byte order mark selects the encoding; otherwise UTF-8 is assumed and
// undecodable bytes are dropped.
func Decode(data []byte) string {
	dec := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		out = data
	}
	text := strings.ToValidUTF8(string(out), "")
	return strings.ReplaceAll(text, string(unicode.ReplacementChar), "")
}

// Printable keeps printable runes and line breaks from data. It is the last
// resort for binary input that claimed to be a structured document.
func Printable(data []byte) string {
	text := Decode(data)
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			sb.WriteRune('\n')
		case r == '\t':
			sb.WriteRune(' ')
		case r == unicode.ReplacementChar:
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		default:
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

// PlainText is the plain-text path of the normalizer.
func PlainText(data []byte) []LogicalLine {
	return FromText(Decode(data))
}
