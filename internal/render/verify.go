package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func relaxedConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount reads a PDF and returns its number of pages.
func PageCount(rs io.ReadSeeker) (int, error) {
	n, err := api.PageCount(rs, relaxedConfig())
	if err != nil {
		return 0, fmt.Errorf("render: failed to get page count: %w", err)
	}
	return n, nil
}

// Verify checks that data is a readable PDF with the expected page count.
func Verify(data []byte, wantPages int) error {
	n, err := PageCount(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if n != wantPages {
		return fmt.Errorf("render: pdf has %d pages, want %d", n, wantPages)
	}
	return nil
}
