package records

import (
	"regexp"
	"strings"
)

// placeholder matches "{{ key }}" with any amount of inner whitespace.
var placeholder = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// Fill substitutes every {{ key }} placeholder in tmpl with the matching
// record value. Placeholders for keys the record does not have are left
// untouched so missing columns stay visible in the output.
func Fill(tmpl string, r Record) string {
	if !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := placeholder.FindStringSubmatch(match)[1]
		if v, ok := r[key]; ok {
			return v
		}
		return match
	})
}

// Placeholders returns the distinct keys referenced by tmpl, in order of
// first appearance.
func Placeholders(tmpl string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, m := range placeholder.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}

// MissingKeys returns the placeholders of tmpl that no record in recs has
// a value for. They are printed verbatim on every card.
func MissingKeys(tmpl string, recs []Record) []string {
	var missing []string
	for _, key := range Placeholders(tmpl) {
		found := false
		for _, r := range recs {
			if _, ok := r[key]; ok {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, key)
		}
	}
	return missing
}
