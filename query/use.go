package query

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// projected is one output column of the USE list
type projected struct {
	index int
	alias string
}

// workingTable is the table a command operates on until it is materialized
// into the USE projection.
type workingTable struct {
	result       *table.TableResult
	names        map[string]int
	projection   []projected
	hasFrom      bool
	groupColumn  int
	grouped      bool
	materialized bool
}

func newWorkingTable(hasFrom bool) *workingTable {
	return &workingTable{names: make(map[string]int), hasFrom: hasFrom, groupColumn: -1}
}

// bindName registers a lookup name unless it is already taken
func (w *workingTable) bindName(name string, index int) {
	if name == "" {
		return
	}
	if _, exists := w.names[name]; !exists {
		w.names[name] = index
	}
}

// resolve returns the working table index of a column reference
func (w *workingTable) resolve(ref ColumnRef) (int, error) {
	if ref.IsIndex {
		if w.hasFrom {
			return -1, fmt.Errorf("%w: index %d (use a column name with FROM)", ErrUnknownColumn, ref.Index)
		}
		if ref.Index >= len(w.result.Columns) {
			return -1, fmt.Errorf("%w: index %d out of range (%d columns)", ErrUnknownColumn, ref.Index, len(w.result.Columns))
		}
		return ref.Index, nil
	}
	if i, ok := w.names[ref.Name]; ok {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownColumn, ref.Name)
}

func (w *workingTable) hasAggregates() bool {
	for _, p := range w.projection {
		if w.result.Columns[p.index].Tag.IsAggregate() {
			return true
		}
	}
	return false
}

// applyUse builds the working table for a USE clause
func (ctx *ExecutionContext) applyUse(use *UseClause) (*workingTable, error) {
	if use.From == "" {
		return ctx.useTables(use)
	}
	return ctx.useFrom(use)
}

// useTables resolves table.column, table and * items without a FROM table.
// Columns of differing length are padded to the longest.
func (ctx *ExecutionContext) useTables(use *UseClause) (*workingTable, error) {
	w := newWorkingTable(false)
	var columns []table.Column
	cache := make(map[string][]table.Column)

	load := func(name string) ([]table.Column, error) {
		if cols, ok := cache[name]; ok {
			return cols, nil
		}
		cols, err := ctx.Source.Columns(name)
		if err != nil {
			return nil, err
		}
		cache[name] = cols
		return cols, nil
	}
	add := func(tbl string, c table.Column, alias string) {
		c.Alias = alias
		c.Data = append([]table.Data(nil), c.Data...)
		index := len(columns)
		columns = append(columns, c)
		w.bindName(c.Name, index)
		w.bindName(tbl+"."+c.Name, index)
		w.bindName(alias, index)
	}

	for _, item := range use.Items {
		switch {
		case item.Star:
			tables, err := ctx.Source.Tables()
			if err != nil {
				return nil, err
			}
			for _, t := range tables {
				for _, c := range t.Columns {
					add(t.Name, c, "")
				}
			}
		case item.Column == "":
			cols, err := load(item.Table)
			if err != nil {
				return nil, err
			}
			for _, c := range cols {
				add(item.Table, c, "")
			}
		default:
			cols, err := load(item.Table)
			if err != nil {
				return nil, err
			}
			i := columnIndex(cols, item.Column)
			if i < 0 {
				return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, item.Table, item.Column)
			}
			add(item.Table, cols[i], item.Alias)
		}
	}

	w.result = table.FromColumns(columns)
	for i := range columns {
		w.projection = append(w.projection, projected{index: i, alias: columns[i].Alias})
	}
	return w, nil
}

// useFrom builds the working table of a USE ... FROM clause: every source
// column followed by one synthetic column per aggregate or index item.
func (ctx *ExecutionContext) useFrom(use *UseClause) (*workingTable, error) {
	w := newWorkingTable(true)
	source, err := ctx.Source.Columns(use.From)
	if err != nil {
		return nil, err
	}

	columns := make([]table.Column, 0, len(source)+len(use.Items))
	for i, c := range source {
		c.Tag, c.Source, c.Alias = table.TagNone, table.NoSource, ""
		c.Data = append([]table.Data(nil), c.Data...)
		columns = append(columns, c)
		w.bindName(c.Name, i)
	}

	rows := 0
	for _, c := range source {
		if len(c.Data) > rows {
			rows = len(c.Data)
		}
	}

	for _, item := range use.Items {
		switch {
		case item.Star:
			for i := range source {
				w.projection = append(w.projection, projected{index: i})
			}

		case item.Function == table.TagNone:
			i := columnIndex(source, item.Column)
			if i < 0 {
				return nil, fmt.Errorf("%w: %s in table %s", ErrUnknownColumn, item.Column, use.From)
			}
			w.projection = append(w.projection, projected{index: i, alias: item.Alias})
			w.bindName(item.Alias, i)

		default:
			col, err := synthesize(source, item, rows)
			if err != nil {
				return nil, err
			}
			index := len(columns)
			columns = append(columns, col)
			w.projection = append(w.projection, projected{index: index, alias: item.Alias})
			w.bindName(col.Name, index)
			w.bindName(item.Alias, index)
		}
	}

	w.result = table.FromColumns(columns)
	return w, nil
}

// synthesize creates the column for an aggregate or $n item. Until grouping
// its cells mirror the source column (COUNT cells are 1).
func synthesize(source []table.Column, item UseItem, rows int) (table.Column, error) {
	if item.Function == table.TagIndex {
		if item.Index >= len(source) {
			return table.Column{}, fmt.Errorf("%w: $%d out of range (%d columns)", ErrUnknownColumn, item.Index, len(source))
		}
		c := source[item.Index]
		return table.Column{
			Name:   fmt.Sprintf("$%d", item.Index),
			Type:   c.Type,
			Tag:    table.TagIndex,
			Source: item.Index,
			Alias:  item.Alias,
			Data:   append([]table.Data(nil), c.Data...),
		}, nil
	}

	col := table.Column{
		Name:   fmt.Sprintf("%s(%s)", item.Function, item.Column),
		Tag:    item.Function,
		Source: table.NoSource,
		Alias:  item.Alias,
	}
	if item.Column != "" {
		col.Source = columnIndex(source, item.Column)
		if col.Source < 0 {
			return table.Column{}, fmt.Errorf("%w: %s in %s", ErrUnknownColumn, item.Column, col.Name)
		}
	}

	switch item.Function {
	case table.TagCount:
		if item.Column == "" {
			col.Name = "COUNT(*)"
		}
		col.Type = table.Int64
		col.Data = make([]table.Data, rows)
		for r := range col.Data {
			col.Data[r] = table.Data{Type: table.Int64, Value: decimal.NewFromInt(1)}
		}
		return col, nil
	case table.TagSum, table.TagAvg:
		col.Type = table.Decimal
	default:
		col.Type = source[col.Source].Type
	}

	src := source[col.Source]
	if !src.Type.IsArithmetic() {
		return table.Column{}, fmt.Errorf("%w: %s over %s column %s", ErrIncompatibleTypes, item.Function, src.Type, src.Name)
	}
	col.Data = make([]table.Data, len(src.Data))
	for r, d := range src.Data {
		col.Data[r] = table.Data{Type: col.Type, Value: d.Value}
	}
	return col, nil
}

// materialize projects the working table to the USE list. Aggregates without
// a GROUPBY collapse the whole table into one group first, and a grouping
// column missing from the list is prepended.
func (ctx *ExecutionContext) materialize(w *workingTable) (*table.TableResult, error) {
	if w.materialized {
		return w.result, nil
	}
	src := w.result
	if !w.grouped && w.hasAggregates() {
		var err error
		if src, err = AggregateAll(src); err != nil {
			return nil, err
		}
	}

	projection := w.projection
	if w.grouped {
		found := false
		for _, p := range projection {
			if p.index == w.groupColumn {
				found = true
				break
			}
		}
		if !found {
			projection = append([]projected{{index: w.groupColumn}}, projection...)
		}
	}

	// new position of each working column that survives projection
	position := make(map[int]int, len(projection))
	for i, p := range projection {
		if _, ok := position[p.index]; !ok {
			position[p.index] = i
		}
	}

	columns := make([]table.Column, len(projection))
	for i, p := range projection {
		c := src.Columns[p.index]
		c.Alias = p.alias
		if c.Source != table.NoSource {
			if np, ok := position[c.Source]; ok {
				c.Source = np
			} else {
				c.Source = table.NoSource
			}
		}
		c.Data = append([]table.Data(nil), c.Data...)
		columns[i] = c
	}

	w.result = table.FromColumns(columns)
	w.materialized = true
	return w.result, nil
}

// columnIndex returns the index of the column with exactly this name, or -1
func columnIndex(columns []table.Column, name string) int {
	for i, c := range columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}
