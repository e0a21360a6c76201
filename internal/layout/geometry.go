package layout

import "math"

// Geometry is the page canvas and text budget a layout pass works with.
// All lengths are in points.
type Geometry struct {
	PageWidth       float64 `json:"page_width"`
	PageHeight      float64 `json:"page_height"`
	TopMargin       float64 `json:"top_margin"`
	BottomMargin    float64 `json:"bottom_margin"`
	LeftMargin      float64 `json:"left_margin"`
	RightMargin     float64 `json:"right_margin"`
	LineHeight      float64 `json:"line_height"`
	MaxCharsPerLine int     `json:"max_chars_per_line"`
	HeadingSize     float64 `json:"heading_size"`
	BodySize        float64 `json:"body_size"`
}

// A4 returns an A4 portrait geometry with 50pt margins and a 14pt line.
func A4() Geometry {
	return Geometry{
		PageWidth:       595.28,
		PageHeight:      841.89,
		TopMargin:       50,
		BottomMargin:    50,
		LeftMargin:      50,
		RightMargin:     50,
		LineHeight:      14,
		MaxCharsPerLine: 90,
		HeadingSize:     16,
		BodySize:        11,
	}
}

// Validate reports a *ConfigurationError when no line could ever be placed
// on a page of this geometry.
func (g Geometry) Validate() error {
	switch {
	case g.LineHeight <= 0:
		return &ConfigurationError{Field: "line_height", Reason: "must be positive"}
	case g.PageHeight <= g.TopMargin+g.BottomMargin:
		return &ConfigurationError{Field: "page_height", Reason: "must exceed top_margin + bottom_margin"}
	case g.capacity() < 1:
		return &ConfigurationError{Field: "line_height", Reason: "exceeds usable page height"}
	case g.PageWidth <= g.LeftMargin+g.RightMargin:
		return &ConfigurationError{Field: "page_width", Reason: "must exceed left_margin + right_margin"}
	case g.MaxCharsPerLine <= 0:
		return &ConfigurationError{Field: "max_chars_per_line", Reason: "must be positive"}
	}
	return nil
}

// UsableHeight is the vertical space between the top and bottom margins.
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.TopMargin - g.BottomMargin
}

// capacityEpsilon absorbs float error when the usable height is a whole
// number of lines.
const capacityEpsilon = 1e-9

// capacity is the line budget of one page. Layout breaks pages on exactly
// this count.
func (g Geometry) capacity() int {
	if g.LineHeight <= 0 {
		return 0
	}
	return int(math.Floor(g.UsableHeight()/g.LineHeight + capacityEpsilon))
}

// LinesPerPage is the number of lines that fit between the margins.
// It returns 0 for an invalid geometry.
func LinesPerPage(g Geometry) int {
	if g.Validate() != nil {
		return 0
	}
	return g.capacity()
}
