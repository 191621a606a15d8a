package query

import (
	"fmt"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// bind runs the subquery once and tests each row against its single column.
// IN matches any row; INEQ requires exactly one row.
func (e *SubqueryExpr) bind(b *binder) (predicate, error) {
	i, err := b.w.resolve(e.Column)
	if err != nil {
		return nil, err
	}
	kind := b.w.result.Columns[i].Type.Kind()

	result, err := b.ctx.NewChildContext().Run(e.Query)
	if err != nil {
		return nil, err
	}
	if len(result.Columns) != 1 {
		return nil, fmt.Errorf("%w: subquery returned %d columns, want 1", ErrSubqueryShape, len(result.Columns))
	}
	if sk := result.Columns[0].Type.Kind(); sk != kind {
		return nil, fmt.Errorf("%w: subquery column is %s, %s is %s", ErrSubqueryShape, sk, e.Column, kind)
	}

	if e.Scalar {
		if len(result.Rows) != 1 {
			return func(table.Row) (bool, error) { return false, nil }, nil
		}
		want := ValueOf(result.Rows[0][0])
		return func(row table.Row) (bool, error) {
			return ValueOf(row[i]).Equal(want)
		}, nil
	}

	set := make(map[string]struct{}, len(result.Rows))
	for _, row := range result.Rows {
		set[ValueOf(row[0]).Key()] = struct{}{}
	}
	return func(row table.Row) (bool, error) {
		_, ok := set[ValueOf(row[i]).Key()]
		return ok, nil
	}, nil
}
