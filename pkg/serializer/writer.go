// Package serializer renders command results as YAML or JSON, to stdout, a
// file, or an HTTP response.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// StdoutURI is the special output destination meaning stdout.
const StdoutURI = "-"

// SupportedFormats returns the accepted output formats.
func SupportedFormats() []Format {
	return []Format{FormatYAML, FormatJSON}
}

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	switch f {
	case FormatYAML, FormatJSON:
		return true
	}
	return false
}

// Writer serializes values into an output stream.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a writer for the given format. Unknown formats fall back
// to YAML, the default output of the tool.
func NewWriter(format Format, out io.Writer) *Writer {
	if !format.IsValid() {
		format = FormatYAML
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a writer for the destination URI. The URI "-"
// or an empty URI targets stdout, anything else is a file path created or
// truncated on first write.
func NewFileWriterOrStdout(format Format, uri string) (*Writer, func() error, error) {
	if uri == "" || uri == StdoutURI {
		return NewStdoutWriter(format), func() error { return nil }, nil
	}

	f, err := os.Create(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output %q: %w", uri, err)
	}
	return NewWriter(format, f), f.Close, nil
}

// Serialize encodes value into the writer's stream.
func (w *Writer) Serialize(ctx context.Context, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml output: %w", err)
		}
	}
	return nil
}
