package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a query result in the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the result in the formatter's specific format
	Format(result *table.TableResult) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Formats lists the accepted format names
var Formats = []string{"jsonl", "json", "csv", "table"}

// New returns the formatter for a format name
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}
