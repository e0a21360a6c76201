// Package text holds the pure text transforms the layout engine runs on
// its input: sanitizing, wrapping and paragraph splitting.
package text

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxPlane is the last code point of the Basic Multilingual Plane.
// Anything above it is dropped because the core PDF fonts have no glyphs for it.
const maxPlane = 0xFFFF

// Sanitize normalizes line endings to "\n", strips ASCII control
// characters (except tab and newline), invalid UTF-8 and code points
// outside the Basic Multilingual Plane, and returns the result in NFC.
//
// Sanitize never fails and is idempotent.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		if dropRune(r) {
			continue
		}
		b.WriteRune(r)
	}

	return norm.NFC.String(b.String())
}

// dropRune reports whether r is removed by Sanitize.
func dropRune(r rune) bool {
	switch {
	case r <= 0x08:
		return true
	case r == 0x0B || r == 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r == 0x7F:
		return true
	case r > maxPlane:
		return true
	}
	return false
}
