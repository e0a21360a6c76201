// Package render serializes a laid-out document to PDF and reads the
// result back for verification.
package render

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/autopdf/autopdf/internal/layout"
)

const (
	coreFamily = "Helvetica"
	utf8Family = "autopdf"

	markSize = 9

	// baseline is the fraction of the line slot above the text baseline.
	baseline = 0.75
)

// Config configures a Writer.
type Config struct {
	// FontPath is an optional TrueType font used for all text. Without it
	// the PDF core font is used and text is translated to cp1252.
	FontPath string
	Title    string
	Creator  string
	Logger   *slog.Logger
}

// Writer draws documents with gofpdf. It is safe for concurrent use; each
// call builds its own PDF.
type Writer struct {
	fontPath string
	title    string
	creator  string
	logger   *slog.Logger
}

// NewWriter creates a Writer.
func NewWriter(cfg Config) *Writer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	creator := cfg.Creator
	if creator == "" {
		creator = "autopdf"
	}
	return &Writer{
		fontPath: cfg.FontPath,
		title:    cfg.Title,
		creator:  creator,
		logger:   logger,
	}
}

// Write renders doc as PDF to w.
func (wr *Writer) Write(w io.Writer, doc *layout.Document) error {
	if doc == nil || len(doc.Pages) == 0 {
		return fmt.Errorf("render: document has no pages")
	}
	g := doc.Geometry

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(g.LeftMargin, g.TopMargin, g.RightMargin)
	pdf.SetCreator(wr.creator, true)
	if wr.title != "" {
		pdf.SetTitle(wr.title, true)
	}

	family, tr := wr.fonts(pdf)

	for _, p := range doc.Pages {
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: p.Width, Ht: p.Height})
		for _, l := range p.Lines {
			drawLine(pdf, family, tr, g, p, l)
		}
		for _, m := range p.Marks {
			drawMark(pdf, family, tr, p, m)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render: failed to write pdf: %w", err)
	}
	wr.logger.Debug("rendered pdf", "pages", len(doc.Pages), "lines", doc.LineCount())
	return nil
}

// Bytes renders doc and returns the PDF.
func (wr *Writer) Bytes(doc *layout.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := wr.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders doc to path.
func (wr *Writer) WriteFile(path string, doc *layout.Document) error {
	data, err := wr.Bytes(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("render: failed to write %s: %w", path, err)
	}
	return nil
}

// fonts registers the configured font and returns the family to use and
// the string translation it needs.
func (wr *Writer) fonts(pdf *gofpdf.Fpdf) (string, func(string) string) {
	if wr.fontPath != "" {
		if _, err := os.Stat(wr.fontPath); err == nil {
			pdf.AddUTF8Font(utf8Family, "", wr.fontPath)
			pdf.AddUTF8Font(utf8Family, "B", wr.fontPath)
			if pdf.Ok() {
				return utf8Family, func(s string) string { return s }
			}
			wr.logger.Warn("failed to load font, using core font", "path", wr.fontPath, "error", pdf.Error())
			pdf.ClearError()
		} else {
			wr.logger.Warn("font not found, using core font", "path", wr.fontPath)
		}
	}
	return coreFamily, pdf.UnicodeTranslatorFromDescriptor("")
}

// top converts a baseline measured from the page bottom to gofpdf's
// top-left origin.
func top(p layout.Page, y float64) float64 {
	return p.Height - y
}

func drawLine(pdf *gofpdf.Fpdf, family string, tr func(string) string, g layout.Geometry, p layout.Page, l layout.PositionedLine) {
	switch l.Style.Class {
	case layout.ClassSpacer:
		return
	case layout.ClassRule:
		// Rules sit in the middle of their line slot.
		y := top(p, l.Y-g.LineHeight/2)
		pdf.SetDrawColor(120, 120, 120)
		pdf.SetLineWidth(0.8)
		pdf.Line(l.X, y, p.Width-g.RightMargin, y)
		return
	}

	size := g.BodySize
	if l.Style.Class == layout.ClassHeading {
		size = g.HeadingSize
	}
	if size <= 0 {
		size = g.LineHeight * 0.8
	}
	style := ""
	if l.Style.Emphasis {
		style = "B"
	}
	pdf.SetFont(family, style, size)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(l.X, top(p, l.Y-baseline*g.LineHeight), tr(l.Text))
}

func drawMark(pdf *gofpdf.Fpdf, family string, tr func(string) string, p layout.Page, m layout.OverlayMark) {
	text := tr(m.Text)
	pdf.SetFont(family, "", markSize)
	pdf.SetTextColor(130, 130, 130)

	x := m.X
	switch m.Align {
	case layout.AlignRight:
		x -= pdf.GetStringWidth(text)
	case layout.AlignCenter:
		x -= pdf.GetStringWidth(text) / 2
	}
	pdf.Text(x, top(p, m.Y), text)
}
