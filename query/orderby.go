package query

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// SortKey is a resolved ORDERBY key
type SortKey struct {
	Column int
	Desc   bool
}

// comparer orders cells: numbers numerically and before everything else,
// the rest case-insensitively. A comparer is not safe for concurrent use.
type comparer struct {
	fold cases.Caser
}

func newComparer() *comparer {
	return &comparer{fold: cases.Fold()}
}

func numeric(d table.Data) (decimal.Decimal, bool) {
	if v, ok := d.Decimal(); ok {
		return v, true
	}
	if d.Kind() == table.KindBoolean {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimSpace(d.String()))
	return v, err == nil
}

// compareData compares two cells
func (c *comparer) compareData(a, b table.Data) int {
	an, aok := numeric(a)
	bn, bok := numeric(b)
	switch {
	case aok && bok:
		return an.Cmp(bn)
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(c.fold.String(a.String()), c.fold.String(b.String()))
}

// compareText compares two strings with the cell ordering rules
func (c *comparer) compareText(a, b string) int {
	return c.compareData(table.Data{Type: table.String, Value: a}, table.Data{Type: table.String, Value: b})
}

// ApplyOrderBy sorts rows by the given keys. The sort is stable, so rows that
// tie on every key keep their relative order.
func ApplyOrderBy(t *table.TableResult, keys []SortKey) *table.TableResult {
	rows := make([]table.Row, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append(table.Row(nil), row...)
	}

	cmp := newComparer()
	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			c := cmp.compareData(rows[i][key.Column], rows[j][key.Column])
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return table.FromRows(t.Columns, rows)
}

// ApplyCOrderBy sorts the columns by display name, then rebuilds the rows
func ApplyCOrderBy(t *table.TableResult, desc bool) *table.TableResult {
	order := make([]int, len(t.Columns))
	for i := range order {
		order[i] = i
	}

	cmp := newComparer()
	sort.SliceStable(order, func(i, j int) bool {
		c := cmp.compareText(t.Columns[order[i]].DisplayName(), t.Columns[order[j]].DisplayName())
		if desc {
			return c > 0
		}
		return c < 0
	})

	position := make([]int, len(order))
	for to, from := range order {
		position[from] = to
	}
	columns := make([]table.Column, len(order))
	for to, from := range order {
		c := t.Columns[from]
		if c.Source >= 0 && c.Source < len(position) {
			c.Source = position[c.Source]
		}
		c.Data = append([]table.Data(nil), c.Data...)
		columns[to] = c
	}
	return table.FromColumns(columns)
}

// applyOrderBy resolves the ORDERBY keys against the working table
func (ctx *ExecutionContext) applyOrderBy(w *workingTable, clause *OrderByClause) (*table.TableResult, error) {
	keys := make([]SortKey, len(clause.Items))
	for i, item := range clause.Items {
		col, err := w.resolve(item.Column)
		if err != nil {
			return nil, err
		}
		keys[i] = SortKey{Column: col, Desc: item.Desc}
	}
	return ApplyOrderBy(w.result, keys), nil
}
