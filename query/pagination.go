package query

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// window converts SUBROW/DELROW style parameters into a half-open range over
// n items. One parameter k selects the first k items, two parameters
// (start, count) select count items from the 1-based start.
func window(n int, params []int) (int, int, error) {
	for _, p := range params {
		if p < 1 {
			return 0, 0, fmt.Errorf("%w: parameter %d must be at least 1", ErrInvalidArgument, p)
		}
	}
	switch len(params) {
	case 1:
		return 0, min(params[0], n), nil
	case 2:
		start := min(params[0]-1, n)
		return start, min(start+params[1], n), nil
	default:
		return 0, 0, fmt.Errorf("%w: expected 1 or 2 parameters, got %d", ErrInvalidArgument, len(params))
	}
}

// ApplySubRow keeps the selected rows
func ApplySubRow(t *table.TableResult, params []int) (*table.TableResult, error) {
	start, end, err := window(len(t.Rows), params)
	if err != nil {
		return nil, err
	}
	return table.FromRows(t.Columns, copyRows(t.Rows[start:end])), nil
}

// ApplyDelRow removes the selected rows
func ApplyDelRow(t *table.TableResult, params []int) (*table.TableResult, error) {
	start, end, err := window(len(t.Rows), params)
	if err != nil {
		return nil, err
	}
	rows := copyRows(t.Rows[:start])
	rows = append(rows, copyRows(t.Rows[end:])...)
	return table.FromRows(t.Columns, rows), nil
}

// ApplySubCol keeps the selected columns
func ApplySubCol(t *table.TableResult, params []int) (*table.TableResult, error) {
	start, end, err := window(len(t.Columns), params)
	if err != nil {
		return nil, err
	}
	return selectColumns(t, func(j int) bool { return j >= start && j < end }), nil
}

// ApplyDelCol removes the selected columns
func ApplyDelCol(t *table.TableResult, params []int) (*table.TableResult, error) {
	start, end, err := window(len(t.Columns), params)
	if err != nil {
		return nil, err
	}
	return selectColumns(t, func(j int) bool { return j < start || j >= end }), nil
}

// ApplyAddRow appends n rows of default values. Unique cells get fresh
// identifiers and AutoInt cells continue from the column maximum.
func ApplyAddRow(t *table.TableResult, n int) (*table.TableResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: ADDROW count %d must be at least 1", ErrInvalidArgument, n)
	}

	next := make([]decimal.Decimal, len(t.Columns))
	for j, c := range t.Columns {
		if c.Type != table.AutoInt {
			continue
		}
		highest := decimal.Zero
		for _, d := range c.Data {
			if v, ok := d.Decimal(); ok && v.GreaterThan(highest) {
				highest = v
			}
		}
		next[j] = highest.Add(decimal.NewFromInt(1))
	}

	rows := copyRows(t.Rows)
	for i := 0; i < n; i++ {
		row := make(table.Row, len(t.Columns))
		for j, c := range t.Columns {
			if c.Type == table.AutoInt {
				row[j] = table.Data{Type: table.AutoInt, Value: next[j]}
				next[j] = next[j].Add(decimal.NewFromInt(1))
				continue
			}
			row[j] = table.DefaultData(c.Type)
		}
		rows = append(rows, row)
	}
	return table.FromRows(t.Columns, rows), nil
}

func copyRows(rows []table.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		out[i] = append(table.Row(nil), row...)
	}
	return out
}

// selectColumns keeps the columns accepted by keep and rebuilds the rows
func selectColumns(t *table.TableResult, keep func(j int) bool) *table.TableResult {
	position := make(map[int]int)
	var columns []table.Column
	for j, c := range t.Columns {
		if !keep(j) {
			continue
		}
		position[j] = len(columns)
		c.Data = append([]table.Data(nil), c.Data...)
		columns = append(columns, c)
	}
	for j := range columns {
		if to, ok := position[columns[j].Source]; ok {
			columns[j].Source = to
		} else {
			columns[j].Source = table.NoSource
		}
	}
	return table.FromColumns(columns)
}

// applyReshape dispatches the clauses that run on the materialized table
func applyReshape(t *table.TableResult, clause Clause) (*table.TableResult, error) {
	switch c := clause.(type) {
	case *COrderByClause:
		return ApplyCOrderBy(t, c.Desc), nil
	case *AddRowClause:
		return ApplyAddRow(t, c.Count)
	case *PageClause:
		switch c.Op {
		case TokenSubRow:
			return ApplySubRow(t, c.Params)
		case TokenDelRow:
			return ApplyDelRow(t, c.Params)
		case TokenSubCol:
			return ApplySubCol(t, c.Params)
		case TokenDelCol:
			return ApplyDelCol(t, c.Params)
		}
	}
	return nil, fmt.Errorf("%w: %s cannot reshape a table", ErrUnknownClause, clause.Keyword())
}
