// Package records defines the structured card record and the ways records
// enter the system: extraction from labeled text, JSON and CSV batch
// payloads, and template substitution.
package records

import (
	"sort"
	"strings"
)

// Well-known record keys.
const (
	KeyName    = "name"
	KeyTitle   = "title"
	KeySubject = "subject"
	KeyDate    = "date"
	KeyDetails = "details"
)

// Record maps a field name to its value. Keys other than the well-known
// ones are carried through untouched. Records are treated as immutable
// once built; use Clone before modifying one.
type Record map[string]string

// Get returns the value stored under key, or "".
func (r Record) Get(key string) string {
	return r[key]
}

// Lookup returns the first non-empty value among keys.
func (r Record) Lookup(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Name returns the name field.
func (r Record) Name() string { return r[KeyName] }

// Title returns the title field, falling back to subject.
func (r Record) Title() string {
	v, _ := r.Lookup(KeyTitle, KeySubject)
	return v
}

// Date returns the date field.
func (r Record) Date() string { return r[KeyDate] }

// Details returns the details field.
func (r Record) Details() string { return r[KeyDetails] }

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Field describes one labeled field rendered for a record.
type Field struct {
	Key     string   `json:"key" yaml:"key"`
	Label   string   `json:"label" yaml:"label"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Schema controls how a record becomes layout content.
//
// Fields are rendered in order as labeled fields when present in the
// record; DetailsKey names the free-text field rendered as a paragraph.
// When Template is set it takes precedence: the record is substituted
// into the template and the result is rendered as paragraphs.
type Schema struct {
	Fields     []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	DetailsKey string  `json:"details_key,omitempty" yaml:"details_key,omitempty"`
	Template   string  `json:"template,omitempty" yaml:"template,omitempty"`
}

// DefaultSchema renders name, title (or subject) and date as labeled
// fields and details as the card body.
func DefaultSchema() Schema {
	return Schema{
		Fields: []Field{
			{Key: KeyName, Label: "Name"},
			{Key: KeyTitle, Label: "Title", Aliases: []string{KeySubject}},
			{Key: KeyDate, Label: "Date"},
		},
		DetailsKey: KeyDetails,
	}
}

// TemplateSchema returns a schema that renders every record through tmpl.
func TemplateSchema(tmpl string) Schema {
	return Schema{Template: tmpl}
}

// Value returns the value of f in r, trying aliases in order.
func (s Schema) Value(r Record, f Field) (string, bool) {
	keys := append([]string{f.Key}, f.Aliases...)
	return r.Lookup(keys...)
}

// HasTemplate reports whether the schema renders through a template.
func (s Schema) HasTemplate() bool {
	return strings.TrimSpace(s.Template) != ""
}
