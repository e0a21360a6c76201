package layout

import (
	"strconv"
	"strings"
)

// Overlays are the marks repeated on every page. Empty fields are skipped.
// Footer may contain {page} and {pages}, expanded per page (1-based).
type Overlays struct {
	Watermark string `json:"watermark,omitempty"`
	Header    string `json:"header,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

// Empty reports whether no mark would be added.
func (o Overlays) Empty() bool {
	return o.Watermark == "" && o.Header == "" && o.Footer == ""
}

// Apply returns a copy of doc with the overlay marks attached to every
// page. doc is not modified and page lines are shared, not recomputed.
//
// Anchors: the watermark sits bottom-right inside the right margin, the
// header is centered in the top margin and the footer is centered in the
// bottom margin.
func Apply(doc *Document, o Overlays) *Document {
	if doc == nil {
		return nil
	}
	g := doc.Geometry
	out := &Document{Geometry: g, Pages: make([]Page, len(doc.Pages))}
	total := strconv.Itoa(len(doc.Pages))

	for i, p := range doc.Pages {
		marks := make([]OverlayMark, 0, len(p.Marks)+3)
		marks = append(marks, p.Marks...)

		if o.Header != "" {
			marks = append(marks, OverlayMark{
				Kind:  MarkHeader,
				Text:  o.Header,
				X:     p.Width / 2,
				Y:     p.Height - g.TopMargin/2,
				Align: AlignCenter,
			})
		}
		if o.Watermark != "" {
			marks = append(marks, OverlayMark{
				Kind:  MarkWatermark,
				Text:  o.Watermark,
				X:     p.Width - g.RightMargin,
				Y:     g.BottomMargin / 2,
				Align: AlignRight,
			})
		}
		if o.Footer != "" {
			footer := strings.NewReplacer("{page}", strconv.Itoa(i+1), "{pages}", total).Replace(o.Footer)
			marks = append(marks, OverlayMark{
				Kind:  MarkFooter,
				Text:  footer,
				X:     p.Width / 2,
				Y:     g.BottomMargin / 2,
				Align: AlignCenter,
			})
		}

		p.Marks = marks
		out.Pages[i] = p
	}
	return out
}
