package text

import (
	"regexp"
	"strings"
)

// blankRun matches a paragraph separator: two or more newlines, allowing
// whitespace-only lines in between.
var blankRun = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)*`)

// SplitParagraphs splits sanitized text into paragraphs on runs of two or
// more consecutive newlines. Leading and trailing blank lines are dropped;
// text that is blank yields no paragraphs. Line breaks inside a paragraph
// are kept.
func SplitParagraphs(s string) []string {
	s = strings.Trim(s, "\n")
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := blankRun.Split(s, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimRight(p, " \t\n")
		if strings.TrimSpace(p) == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

// IsBlank reports whether s has no visible content.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
