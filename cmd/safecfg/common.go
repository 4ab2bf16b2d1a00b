package main

import (
	"fmt"
	"io"

	"github.com/safecfg-dev/safecfg/internal/output"
)

// Formatter renders a report to a writer.
type Formatter interface {
	Format(report *output.Report) error
}

// newFormatter selects a formatter for the given format name.
func newFormatter(w io.Writer, format string) (Formatter, error) {
	switch format {
	case "table":
		return output.NewTableFormatter(w), nil
	case "json":
		return output.NewJSONFormatter(w, true), nil
	case "yaml":
		return output.NewYAMLFormatter(w), nil
	case "sarif":
		return output.NewSARIFFormatter(w), nil
	default:
		return nil, fmt.Errorf("invalid format: %s (valid: table, json, yaml, sarif)", format)
	}
}
