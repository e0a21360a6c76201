package config

import (
	"github.com/autopdf/autopdf/internal/generate"
	"github.com/autopdf/autopdf/internal/layout"
)

// Config holds autopdf configuration.
// Stored at: ~/.autopdf/config.yaml
type Config struct {
	Layout  LayoutCfg  `mapstructure:"layout" yaml:"layout"`
	Overlay OverlayCfg `mapstructure:"overlay" yaml:"overlay"`
	Limits  LimitsCfg  `mapstructure:"limits" yaml:"limits"`
	Server  ServerCfg  `mapstructure:"server" yaml:"server"`
	Render  RenderCfg  `mapstructure:"render" yaml:"render"`
}

// LayoutCfg is the page geometry, in points.
type LayoutCfg struct {
	PageWidth       float64 `mapstructure:"page_width" yaml:"page_width"`
	PageHeight      float64 `mapstructure:"page_height" yaml:"page_height"`
	TopMargin       float64 `mapstructure:"top_margin" yaml:"top_margin"`
	BottomMargin    float64 `mapstructure:"bottom_margin" yaml:"bottom_margin"`
	LeftMargin      float64 `mapstructure:"left_margin" yaml:"left_margin"`
	RightMargin     float64 `mapstructure:"right_margin" yaml:"right_margin"`
	LineHeight      float64 `mapstructure:"line_height" yaml:"line_height"`
	MaxCharsPerLine int     `mapstructure:"max_chars_per_line" yaml:"max_chars_per_line"`
	HeadingSize     float64 `mapstructure:"heading_size" yaml:"heading_size"`
	BodySize        float64 `mapstructure:"body_size" yaml:"body_size"`
}

// OverlayCfg holds the default marks put on every page.
type OverlayCfg struct {
	Watermark string `mapstructure:"watermark" yaml:"watermark"`
	Header    string `mapstructure:"header" yaml:"header"`
	Footer    string `mapstructure:"footer" yaml:"footer"` // {page} and {pages} are expanded
}

// LimitsCfg bounds request sizes.
type LimitsCfg struct {
	MaxRecordsPerBatch int `mapstructure:"max_records_per_batch" yaml:"max_records_per_batch"`
	MaxInputBytes      int `mapstructure:"max_input_bytes" yaml:"max_input_bytes"`
}

// ServerCfg is where the HTTP server listens.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// RenderCfg configures the PDF writer.
type RenderCfg struct {
	// FontPath is an optional TrueType font for non-Latin-1 text.
	FontPath string `mapstructure:"font_path" yaml:"font_path"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	a4 := layout.A4()
	return &Config{
		Layout: LayoutCfg{
			PageWidth:       a4.PageWidth,
			PageHeight:      a4.PageHeight,
			TopMargin:       a4.TopMargin,
			BottomMargin:    a4.BottomMargin,
			LeftMargin:      a4.LeftMargin,
			RightMargin:     a4.RightMargin,
			LineHeight:      a4.LineHeight,
			MaxCharsPerLine: a4.MaxCharsPerLine,
			HeadingSize:     a4.HeadingSize,
			BodySize:        a4.BodySize,
		},
		Overlay: OverlayCfg{
			Footer: "{page} / {pages}",
		},
		Limits: LimitsCfg{
			MaxRecordsPerBatch: 80,
			MaxInputBytes:      1 << 20,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}

// Geometry converts the layout section for the layout engine.
func (c *Config) Geometry() layout.Geometry {
	l := c.Layout
	return layout.Geometry{
		PageWidth:       l.PageWidth,
		PageHeight:      l.PageHeight,
		TopMargin:       l.TopMargin,
		BottomMargin:    l.BottomMargin,
		LeftMargin:      l.LeftMargin,
		RightMargin:     l.RightMargin,
		LineHeight:      l.LineHeight,
		MaxCharsPerLine: l.MaxCharsPerLine,
		HeadingSize:     l.HeadingSize,
		BodySize:        l.BodySize,
	}
}

// Overlays returns the default overlay marks.
func (c *Config) Overlays() layout.Overlays {
	return layout.Overlays{
		Watermark: c.Overlay.Watermark,
		Header:    c.Overlay.Header,
		Footer:    c.Overlay.Footer,
	}
}

// GeneratorSettings returns the settings for generate.Service.
func (c *Config) GeneratorSettings() generate.Settings {
	return generate.Settings{
		Geometry: c.Geometry(),
		Overlays: c.Overlays(),
		Limits: generate.Limits{
			MaxRecords:    c.Limits.MaxRecordsPerBatch,
			MaxInputBytes: c.Limits.MaxInputBytes,
		},
	}
}

// Validate reports a configuration the layout engine cannot work with.
func (c *Config) Validate() error {
	return c.Geometry().Validate()
}
