package api

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how CLI commands print structured results.
type OutputFormat string

const (
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
)

// DefaultOutput is used when --output is empty.
const DefaultOutput = OutputFormatYAML

var outputFormat = DefaultOutput

// ParseOutputFormat validates an --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	switch f {
	case "":
		return DefaultOutput, nil
	case OutputFormatJSON, OutputFormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want yaml or json)", s)
}

// SetOutputFormat changes the format used by Output. The current format
// is kept when s is not a known format.
func SetOutputFormat(s string) error {
	f, err := ParseOutputFormat(s)
	if err != nil {
		return err
	}
	outputFormat = f
	return nil
}

// Output prints data to stdout in the format chosen by --output.
func Output(data any) error {
	return OutputTo(os.Stdout, outputFormat, data)
}

// OutputTo encodes data onto w.
func OutputTo(w io.Writer, format OutputFormat, data any) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format: %s", format)
}

// FileResult is printed by commands that write a PDF.
type FileResult struct {
	Path  string `json:"path" yaml:"path"`
	Pages int    `json:"pages" yaml:"pages"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
}

// OutputFile prints a FileResult.
func OutputFile(path string, pages int, id string) error {
	return Output(FileResult{Path: path, Pages: pages, ID: id})
}
