package records

import (
	"strings"
)

// Labels recognized by Extract, in the order a block must present them.
const (
	LabelName    = "Name:"
	LabelTitle   = "Title:"
	LabelDate    = "Date:"
	LabelDetails = "Details:"
)

// extractState is the position of the extractor inside a record block.
type extractState int

const (
	stateSeek    extractState = iota // before the first Name: line
	stateName                        // collecting the name value
	stateTitle                       // collecting the title value
	stateDate                        // collecting the date value
	stateDetails                     // collecting details until the next Name:
)

var stateLabels = []struct {
	label string
	state extractState
	key   string
}{
	{LabelTitle, stateTitle, KeyTitle},
	{LabelDate, stateDate, KeyDate},
	{LabelDetails, stateDetails, KeyDetails},
}

// Extract scans text for blocks of the form
//
//	Name: ...
//	Title: ...
//	Date: ...
//	Details: ...
//
// where Details runs until the next line starting with "Name:" or the end
// of the input. Labels are case-sensitive and must begin a line (leading
// spaces and tabs are ignored). Text before the first Name: line is
// ignored.
//
// Extraction is best effort and never fails: a block that ends early
// leaves the remaining fields empty, a label may be skipped (the skipped
// fields stay empty), and a label that appears out of order is kept as
// continuation text of the field being collected.
//
// The second result is false when the text holds no Name: line at all; the
// caller should then treat the input as unstructured paragraphs.
func Extract(text string) ([]Record, bool) {
	var (
		out     []Record
		current *builder
		state   = stateSeek
	)

	flush := func() {
		if current != nil {
			out = append(out, current.record())
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeft(line, " \t")

		if rest, ok := strings.CutPrefix(trimmed, LabelName); ok {
			flush()
			current = newBuilder()
			current.start(KeyName, rest)
			state = stateName
			continue
		}

		if state == stateSeek {
			continue
		}

		if next, key, rest, ok := nextLabel(trimmed, state); ok {
			current.start(key, rest)
			state = next
			continue
		}

		current.appendLine(line)
	}
	flush()

	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// nextLabel reports whether line opens a field that comes after state in
// the block order.
func nextLabel(line string, state extractState) (extractState, string, string, bool) {
	if state == stateDetails {
		return state, "", "", false
	}
	for _, l := range stateLabels {
		if l.state <= state {
			continue
		}
		if rest, ok := strings.CutPrefix(line, l.label); ok {
			return l.state, l.key, rest, true
		}
	}
	return state, "", "", false
}

// builder accumulates the lines of one record block.
type builder struct {
	fields  map[string][]string
	current string
}

func newBuilder() *builder {
	return &builder{fields: make(map[string][]string, 4)}
}

func (b *builder) start(key, rest string) {
	b.current = key
	b.fields[key] = []string{rest}
}

func (b *builder) appendLine(line string) {
	b.fields[b.current] = append(b.fields[b.current], line)
}

func (b *builder) record() Record {
	r := Record{
		KeyName:    "",
		KeyTitle:   "",
		KeyDate:    "",
		KeyDetails: "",
	}
	for key, lines := range b.fields {
		r[key] = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return r
}
