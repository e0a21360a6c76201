package config

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// Entry is one configuration key with its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every configuration key with its default value.
// These are registered as viper defaults so each key can also be set
// through an AUTOPDF_ environment variable.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		// Layout
		{Key: "layout.page_width", Value: d.Layout.PageWidth, Description: "Page width in points"},
		{Key: "layout.page_height", Value: d.Layout.PageHeight, Description: "Page height in points"},
		{Key: "layout.top_margin", Value: d.Layout.TopMargin, Description: "Top margin in points"},
		{Key: "layout.bottom_margin", Value: d.Layout.BottomMargin, Description: "Bottom margin in points"},
		{Key: "layout.left_margin", Value: d.Layout.LeftMargin, Description: "Left margin in points"},
		{Key: "layout.right_margin", Value: d.Layout.RightMargin, Description: "Right margin in points"},
		{Key: "layout.line_height", Value: d.Layout.LineHeight, Description: "Vertical space taken by one line"},
		{Key: "layout.max_chars_per_line", Value: d.Layout.MaxCharsPerLine, Description: "Characters per line before a hard wrap"},
		{Key: "layout.heading_size", Value: d.Layout.HeadingSize, Description: "Heading font size"},
		{Key: "layout.body_size", Value: d.Layout.BodySize, Description: "Body font size"},

		// Overlay
		{Key: "overlay.watermark", Value: d.Overlay.Watermark, Description: "Watermark text drawn bottom-right on every page"},
		{Key: "overlay.header", Value: d.Overlay.Header, Description: "Header text centered at the top of every page"},
		{Key: "overlay.footer", Value: d.Overlay.Footer, Description: "Footer text; {page} and {pages} are expanded"},

		// Limits
		{Key: "limits.max_records_per_batch", Value: d.Limits.MaxRecordsPerBatch, Description: "Maximum records in one batch"},
		{Key: "limits.max_input_bytes", Value: d.Limits.MaxInputBytes, Description: "Maximum size of a text request in bytes"},

		// Server
		{Key: "server.host", Value: d.Server.Host, Description: "Address the HTTP server binds to"},
		{Key: "server.port", Value: d.Server.Port, Description: "Port the HTTP server listens on"},

		// Render
		{Key: "render.font_path", Value: d.Render.FontPath, Description: "Optional TrueType font for non-Latin-1 text"},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// ValidateKey checks that key is well formed and known.
// Valid keys contain letters, digits, dots, underscores and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	if GetDefault(key) == nil {
		return fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return nil
}
