package table

import (
	"errors"
	"fmt"
)

// ErrUnknownTable is returned by column sources for a table they do not hold
var ErrUnknownTable = errors.New("unknown table")

// NoSource marks a column that does not aggregate another column
const NoSource = -1

// Column is one column of a table together with its cells
type Column struct {
	Name   string
	Type   DataType
	Tag    AggregateTag // set on columns synthesized by aggregate functions
	Source int          // index of the aggregated column, NoSource when unset
	Alias  string       // AS name
	Data   []Data
}

// NewColumn creates an untagged column
func NewColumn(name string, dt DataType, data ...Data) Column {
	return Column{Name: name, Type: dt, Source: NoSource, Data: data}
}

// DisplayName returns the alias if one is set, the name otherwise
func (c Column) DisplayName() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}

// header returns a copy of the column without its cells
func (c Column) header() Column {
	c.Data = nil
	return c
}

// Row is the row-major view of one table row, index-aligned with the columns
type Row []Data

// Table is a named table exposed by a column source
type Table struct {
	Name    string
	Columns []Column
}

// TableResult is the materialized result of a query.
//
// For every row r and column j, Rows[r][j] and Columns[j].Data[r] denote the
// same cell once the table is consistent.
type TableResult struct {
	Columns []Column
	Rows    []Row
}

// FromColumns builds a consistent table from column-major data
func FromColumns(columns []Column) *TableResult {
	t := &TableResult{Columns: columns}
	t.RowsFromColumns()
	return t
}

// FromRows builds a consistent table from a column header and row-major data
func FromRows(columns []Column, rows []Row) *TableResult {
	t := &TableResult{Columns: make([]Column, len(columns)), Rows: rows}
	for i, c := range columns {
		t.Columns[i] = c.header()
	}
	t.ColumnsFromRows()
	return t
}

// NumRows returns the row count of the row-major view
func (t *TableResult) NumRows() int {
	return len(t.Rows)
}

// RowsFromColumns rebuilds the row-major view from the column cells.
// Columns shorter than the longest one are padded with their type default.
func (t *TableResult) RowsFromColumns() {
	n := 0
	for _, c := range t.Columns {
		if len(c.Data) > n {
			n = len(c.Data)
		}
	}

	for j := range t.Columns {
		for len(t.Columns[j].Data) < n {
			t.Columns[j].Data = append(t.Columns[j].Data, DefaultData(t.Columns[j].Type))
		}
	}

	rows := make([]Row, n)
	for r := 0; r < n; r++ {
		row := make(Row, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Data[r]
		}
		rows[r] = row
	}
	t.Rows = rows
}

// ColumnsFromRows rebuilds every column's cells from the row-major view
func (t *TableResult) ColumnsFromRows() {
	for j := range t.Columns {
		data := make([]Data, len(t.Rows))
		for r, row := range t.Rows {
			if j < len(row) {
				data[r] = row[j]
			} else {
				data[r] = DefaultData(t.Columns[j].Type)
			}
		}
		t.Columns[j].Data = data
	}
}

// Clone returns a deep copy of the table structure. Cell values are
// immutable and shared.
func (t *TableResult) Clone() *TableResult {
	out := &TableResult{
		Columns: make([]Column, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	for j, c := range t.Columns {
		c.Data = append([]Data(nil), c.Data...)
		out.Columns[j] = c
	}
	for r, row := range t.Rows {
		out.Rows[r] = append(Row(nil), row...)
	}
	return out
}

// Validate reports the first disagreement between the two views
func (t *TableResult) Validate() error {
	for _, c := range t.Columns {
		if len(c.Data) != len(t.Rows) {
			return fmt.Errorf("column %q has %d cells, table has %d rows", c.Name, len(c.Data), len(t.Rows))
		}
	}
	for r, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, table has %d columns", r, len(row), len(t.Columns))
		}
		for j := range row {
			if !row[j].Equal(t.Columns[j].Data[r]) {
				return fmt.Errorf("cell (%d, %d) differs between row and column view", r, j)
			}
		}
	}
	return nil
}

// ColumnNames returns the display names of all columns
func (t *TableResult) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		names[j] = c.DisplayName()
	}
	return names
}
