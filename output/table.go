package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// TableFormatter outputs rows as an aligned text table followed by a row
// count
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the result with one column per result column
func (t *TableFormatter) Format(result *table.TableResult) error {
	tw := tablewriter.NewWriter(t.writer)
	tw.SetHeader(result.ColumnNames())
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, d := range row {
			cells[i] = d.String()
		}
		tw.Append(cells)
	}
	tw.Render()

	noun := "rows"
	if result.NumRows() == 1 {
		noun = "row"
	}
	_, err := fmt.Fprintf(t.writer, "(%d %s)\n", result.NumRows(), noun)
	return err
}
