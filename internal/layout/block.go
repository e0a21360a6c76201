package layout

import "strconv"

// Block is one unit of layout input. The set of variants is closed.
type Block interface {
	block()
}

// Heading is a single emphasized line followed by a spacer.
type Heading struct {
	Text string
}

// LabeledField renders as "Label: Value", wrapped like body text.
type LabeledField struct {
	Label string
	Value string
}

// Paragraph is free text; embedded newlines are kept as line breaks.
type Paragraph struct {
	Text string
}

// CardFrame opens a record card with a horizontal rule.
type CardFrame struct {
	Ordinal int
}

// Spacer is one blank line.
type Spacer struct{}

// ForcePageBreak ends the current page unless it is still empty.
type ForcePageBreak struct{}

func (Heading) block()        {}
func (LabeledField) block()   {}
func (Paragraph) block()      {}
func (CardFrame) block()      {}
func (Spacer) block()         {}
func (ForcePageBreak) block() {}

func (c CardFrame) String() string { return "card " + strconv.Itoa(c.Ordinal) }
