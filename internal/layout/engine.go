package layout

import (
	"strings"

	"github.com/autopdf/autopdf/internal/text"
)

// candidate is a line produced by block expansion, before it is positioned.
type candidate struct {
	text  string
	style Style
}

func (c candidate) spacer() bool { return c.style.Class == ClassSpacer }

var spacerLine = candidate{style: Style{Class: ClassSpacer}}

// expand maps a block to the ordered lines it occupies.
func expand(b Block, g Geometry) []candidate {
	switch b := b.(type) {
	case Heading:
		line := strings.ReplaceAll(b.Text, "\n", " ")
		return []candidate{
			{text: text.Truncate(line, g.MaxCharsPerLine), style: Style{Class: ClassHeading, Emphasis: true}},
			spacerLine,
		}
	case LabeledField:
		lines := text.Wrap(b.Label+": "+b.Value, g.MaxCharsPerLine)
		out := make([]candidate, len(lines))
		for i, l := range lines {
			out[i] = candidate{text: l, style: Style{Class: ClassField, Emphasis: i == 0}}
		}
		return out
	case Paragraph:
		lines := text.Wrap(b.Text, g.MaxCharsPerLine)
		out := make([]candidate, len(lines))
		for i, l := range lines {
			out[i] = candidate{text: l, style: Style{Class: ClassBody}}
		}
		return out
	case CardFrame:
		return []candidate{{style: Style{Class: ClassRule}}, spacerLine}
	case Spacer:
		return []candidate{spacerLine}
	}
	return nil
}

// cursor is the mutable state of one layout pass. Page state is
// AccumulatingPage while lines still fit and PageFull once the page holds
// its line budget.
type cursor struct {
	g        Geometry
	capacity int // lines per page, at least 1 for a valid geometry
	doc      *Document
	page     Page
	n        int // lines placed on the current page
}

func newCursor(g Geometry) *cursor {
	c := &cursor{g: g, capacity: g.capacity(), doc: &Document{Geometry: g}}
	c.page = c.blankPage()
	return c
}

func (c *cursor) blankPage() Page {
	return Page{Index: len(c.doc.Pages), Width: c.g.PageWidth, Height: c.g.PageHeight}
}

// y is the top of the next line slot. It is derived from the line count
// so repeated subtraction cannot drift.
func (c *cursor) y() float64 {
	return c.g.PageHeight - c.g.TopMargin - float64(c.n)*c.g.LineHeight
}

func (c *cursor) pageFull() bool {
	return c.n >= c.capacity
}

func (c *cursor) breakPage() {
	c.doc.Pages = append(c.doc.Pages, c.page)
	c.n = 0
	c.page = c.blankPage()
}

func (c *cursor) place(l candidate) {
	if l.spacer() && (c.n == 0 || c.pageFull()) {
		return
	}
	if c.pageFull() {
		c.breakPage()
	}
	c.page.Lines = append(c.page.Lines, PositionedLine{
		Text:  l.text,
		X:     c.g.LeftMargin,
		Y:     c.y(),
		Style: l.style,
	})
	c.n++
}

func (c *cursor) finish() *Document {
	if c.n > 0 || len(c.doc.Pages) == 0 {
		c.doc.Pages = append(c.doc.Pages, c.page)
	}
	return c.doc
}

// Layout flows blocks onto pages of geometry g. Lines start at
// PageHeight-TopMargin and step down by LineHeight; a new page begins once
// a page holds LinesPerPage(g) lines, so no line ends below BottomMargin.
// Blocks that cross a page boundary are split there. Spacer lines are
// never placed at the top of a page.
//
// Layout fails only with a *ConfigurationError for a degenerate geometry.
// An empty block list yields one empty page.
func Layout(blocks []Block, g Geometry) (*Document, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	c := newCursor(g)
	for _, b := range blocks {
		if _, ok := b.(ForcePageBreak); ok {
			if c.n > 0 {
				c.breakPage()
			}
			continue
		}
		for _, l := range expand(b, g) {
			c.place(l)
		}
	}
	return c.finish(), nil
}

// TextBlocks turns unstructured text into paragraphs separated by spacers.
func TextBlocks(s string) []Block {
	paragraphs := text.SplitParagraphs(s)
	blocks := make([]Block, 0, 2*len(paragraphs))
	for i, p := range paragraphs {
		if i > 0 {
			blocks = append(blocks, Spacer{})
		}
		blocks = append(blocks, Paragraph{Text: p})
	}
	return blocks
}
