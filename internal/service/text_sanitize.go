package service

import (
	"strings"
	"unicode/utf8"
)

// sanitizeText drops NUL and other C0/C1 control characters, keeping tab,
// newline and carriage return, and replaces invalid UTF-8 so extracted text
// is always safe to JSON-encode.
func sanitizeText(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r < 0x20, r >= 0x7F && r < 0xA0:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
