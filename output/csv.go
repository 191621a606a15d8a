package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header of column display names followed by one record per
// row. A result without columns writes nothing.
func (c *CSVFormatter) Format(result *table.TableResult) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(result.Columns) > 0 {
		if err := csvWriter.Write(result.ColumnNames()); err != nil {
			return err
		}
		for _, row := range result.Rows {
			record := make([]string, len(row))
			for i, d := range row {
				record[i] = formatValue(d)
			}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue converts a cell to its CSV field
func formatValue(d table.Data) string {
	val := d.String()
	if d.Kind() != table.KindString && d.Kind() != table.KindChar {
		return val
	}
	// Sanitize against CSV injection by prefixing dangerous characters
	// that could trigger formula execution in spreadsheet applications
	if len(val) > 0 {
		switch val[0] {
		case '=', '+', '-', '@', '\t', '\r', '\n', '|':
			return "'" + strings.ReplaceAll(val, "'", "''")
		}
	}
	return val
}
