// Package export serializes a scan report. Output is deterministic: the
// same report always produces identical bytes in every format.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/semanticdata/duplicate-finder/internal/scanner"
)

type Format string

const (
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTXT, FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want txt, json, or csv)", s)
	}
}

// Write serializes the report to w in the given format.
func Write(w io.Writer, format Format, r *scanner.Report) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	default:
		return writeTXT(w, r)
	}
}

// WriteFile serializes the report to path, creating or truncating it.
func WriteFile(path string, format Format, r *scanner.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
