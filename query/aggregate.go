package query

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// accumulator holds the running state of one aggregate column in one group
type accumulator struct {
	count int64
	sum   decimal.Decimal
	ext   decimal.Decimal
	seen  bool
}

// Group represents a group of rows with the same group key
type Group struct {
	Key   string
	First table.Row
	acc   []accumulator
}

// aggregateColumns returns the indexes of the aggregate columns of t
func aggregateColumns(t *table.TableResult) []int {
	var cols []int
	for j, c := range t.Columns {
		if c.Tag.IsAggregate() {
			cols = append(cols, j)
		}
	}
	return cols
}

// ApplyGroupBy groups rows by the value of column groupBy in first-occurrence
// order and emits one row per group, built from the group's first row with
// its aggregate cells replaced.
func ApplyGroupBy(t *table.TableResult, groupBy int) (*table.TableResult, error) {
	if groupBy < 0 || groupBy >= len(t.Columns) {
		return nil, fmt.Errorf("%w: group column %d out of range", ErrUnknownColumn, groupBy)
	}

	aggs := aggregateColumns(t)
	groups := make(map[string]*Group)
	var order []*Group

	for _, row := range t.Rows {
		key := ValueOf(row[groupBy]).Key()
		g, ok := groups[key]
		if !ok {
			g = &Group{Key: key, First: row, acc: make([]accumulator, len(aggs))}
			groups[key] = g
			order = append(order, g)
		}
		if err := accumulate(t, aggs, g, row); err != nil {
			return nil, err
		}
	}

	rows := make([]table.Row, len(order))
	for i, g := range order {
		rows[i] = finalize(t, aggs, g)
	}
	return table.FromRows(t.Columns, rows), nil
}

// AggregateAll aggregates the whole table as a single group. An empty table
// still yields one row of defaults, with COUNT cells set to 0.
func AggregateAll(t *table.TableResult) (*table.TableResult, error) {
	aggs := aggregateColumns(t)

	var first table.Row
	if len(t.Rows) > 0 {
		first = t.Rows[0]
	} else {
		first = make(table.Row, len(t.Columns))
		for j, c := range t.Columns {
			first[j] = table.DefaultData(c.Type)
		}
	}

	g := &Group{First: first, acc: make([]accumulator, len(aggs))}
	for _, row := range t.Rows {
		if err := accumulate(t, aggs, g, row); err != nil {
			return nil, err
		}
	}
	return table.FromRows(t.Columns, []table.Row{finalize(t, aggs, g)}), nil
}

// accumulate folds one row into the group's accumulators
func accumulate(t *table.TableResult, aggs []int, g *Group, row table.Row) error {
	for k, j := range aggs {
		col := t.Columns[j]
		acc := &g.acc[k]
		acc.count++
		if col.Tag == table.TagCount {
			continue
		}

		v, ok := row[col.Source].Decimal()
		if !ok {
			return fmt.Errorf("%w: %s over non-numeric value %q", ErrIncompatibleTypes, col.Tag, row[col.Source])
		}
		switch col.Tag {
		case table.TagSum, table.TagAvg:
			acc.sum = acc.sum.Add(v)
		case table.TagMax:
			if !acc.seen || v.GreaterThan(acc.ext) {
				acc.ext = v
			}
		case table.TagMin:
			if !acc.seen || v.LessThan(acc.ext) {
				acc.ext = v
			}
		}
		acc.seen = true
	}
	return nil
}

// finalize builds the output row of a group. AVG divides only here, after
// every row has been accumulated.
func finalize(t *table.TableResult, aggs []int, g *Group) table.Row {
	row := append(table.Row(nil), g.First...)
	for k, j := range aggs {
		col := t.Columns[j]
		acc := g.acc[k]

		var v decimal.Decimal
		switch col.Tag {
		case table.TagCount:
			v = decimal.NewFromInt(acc.count)
		case table.TagSum:
			v = acc.sum
		case table.TagAvg:
			if acc.count > 0 {
				v = acc.sum.Div(decimal.NewFromInt(acc.count))
			}
		case table.TagMax, table.TagMin:
			if !acc.seen {
				row[j] = table.DefaultData(col.Type)
				continue
			}
			v = acc.ext
		}
		row[j] = table.Data{Type: col.Type, Value: v}
	}
	return row
}

// applyGroupBy resolves the grouping column and groups the working table
func (ctx *ExecutionContext) applyGroupBy(w *workingTable, clause *GroupByClause) (*table.TableResult, error) {
	i, err := w.resolve(clause.Column)
	if err != nil {
		return nil, err
	}
	result, err := ApplyGroupBy(w.result, i)
	if err != nil {
		return nil, err
	}
	w.grouped = true
	w.groupColumn = i
	return result, nil
}
