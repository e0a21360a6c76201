// Package layout turns content blocks into fixed-size pages of positioned
// text lines and decorates those pages with overlay marks.
//
// Coordinates follow the PDF convention: the origin is the bottom-left
// corner of the page and y grows upwards. A line's Y is the top of its
// slot; the line occupies the band from Y-LineHeight up to Y.
package layout

import "strings"

// StyleClass is the font class a line is drawn with.
type StyleClass string

const (
	ClassHeading StyleClass = "heading"
	ClassBody    StyleClass = "body"
	ClassField   StyleClass = "field"
	ClassRule    StyleClass = "rule"   // horizontal rule, no text
	ClassSpacer  StyleClass = "spacer" // blank line between blocks
)

// Style is the style reference attached to a positioned line.
type Style struct {
	Class    StyleClass `json:"class"`
	Emphasis bool       `json:"emphasis,omitempty"`
}

// PositionedLine is one line of text anchored on a page.
type PositionedLine struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Style Style   `json:"style"`
}

// MarkKind identifies an overlay mark.
type MarkKind string

const (
	MarkWatermark MarkKind = "watermark"
	MarkHeader    MarkKind = "header"
	MarkFooter    MarkKind = "footer"
)

// Align is the horizontal alignment of an overlay mark relative to its X.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// OverlayMark is a fixed-position annotation repeated on every page.
// Marks are outside the layout budget.
type OverlayMark struct {
	Kind  MarkKind `json:"kind"`
	Text  string   `json:"text"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Align Align    `json:"align"`
}

// Page is a fixed-size canvas holding positioned lines and overlay marks.
type Page struct {
	Index  int              `json:"index"`
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
	Lines  []PositionedLine `json:"lines"`
	Marks  []OverlayMark    `json:"marks,omitempty"`
}

// Document is an ordered sequence of pages; page order is render order.
type Document struct {
	Geometry Geometry `json:"geometry"`
	Pages    []Page   `json:"pages"`
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// LineCount returns the number of positioned lines across all pages.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// Text returns the text of the page's lines joined by newlines.
func (p Page) Text() string {
	lines := make([]string, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = l.Text
	}
	return strings.Join(lines, "\n")
}

// Append adds the pages of other to d, re-indexing them to follow d's
// existing pages.
func (d *Document) Append(other *Document) {
	if other == nil {
		return
	}
	for _, p := range other.Pages {
		p.Index = len(d.Pages)
		d.Pages = append(d.Pages, p)
	}
}
