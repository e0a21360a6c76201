package text

import (
	"strings"
)

// Wrap splits s on explicit newlines and then hard-cuts every line longer
// than maxWidth runes into consecutive pieces of exactly maxWidth runes
// (the last piece may be shorter). An input line of length n therefore
// yields ceil(n/maxWidth) output lines, and an empty line yields exactly
// one empty output line.
//
// Widths are counted in runes: the layout model assumes a fixed average
// character width. A maxWidth of zero or less disables cutting.
func Wrap(s string, maxWidth int) []string {
	lines := strings.Split(s, "\n")
	if maxWidth <= 0 {
		return lines
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, cut(line, maxWidth)...)
	}
	return out
}

// Truncate returns at most maxWidth runes of s.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	return string(runes[:maxWidth])
}

func cut(line string, maxWidth int) []string {
	runes := []rune(line)
	if len(runes) <= maxWidth {
		return []string{line}
	}

	pieces := make([]string, 0, (len(runes)+maxWidth-1)/maxWidth)
	for len(runes) > maxWidth {
		pieces = append(pieces, string(runes[:maxWidth]))
		runes = runes[maxWidth:]
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}
	return pieces
}
