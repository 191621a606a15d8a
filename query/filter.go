package query

import (
	"fmt"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// binder resolves and type-checks conditions against a working table
type binder struct {
	ctx *ExecutionContext
	w   *workingTable
}

// getter reads an operand's value from a row
type getter func(row table.Row) Value

// operand resolves an operand to a getter and its kind
func (b *binder) operand(o Operand) (getter, table.Kind, error) {
	if o.IsLiteral() {
		v := *o.Literal
		return func(table.Row) Value { return v }, v.Kind, nil
	}
	i, err := b.w.resolve(o.Ref)
	if err != nil {
		return nil, 0, err
	}
	return func(row table.Row) Value { return ValueOf(row[i]) }, b.w.result.Columns[i].Type.Kind(), nil
}

func (e *ComparisonExpr) bind(b *binder) (predicate, error) {
	left, lk, err := b.operand(e.Left)
	if err != nil {
		return nil, err
	}
	right, rk, err := b.operand(e.Right)
	if err != nil {
		return nil, err
	}
	if err := checkKinds(lk, rk); err != nil {
		return nil, err
	}
	if e.Operator != TokenEqual && e.Operator != TokenNotEqual {
		if err := checkOrdered(lk); err != nil {
			return nil, err
		}
	}

	op := e.Operator
	return func(row table.Row) (bool, error) {
		return compare(left(row), op, right(row))
	}, nil
}

// compare applies a comparison operator to two values of the same kind
func compare(left Value, operator TokenType, right Value) (bool, error) {
	switch operator {
	case TokenEqual:
		return left.Equal(right)
	case TokenNotEqual:
		eq, err := left.Equal(right)
		return !eq, err
	}

	c, err := left.Compare(right)
	if err != nil {
		return false, err
	}
	switch operator {
	case TokenLess:
		return c < 0, nil
	case TokenGreater:
		return c > 0, nil
	case TokenLessEqual:
		return c <= 0, nil
	case TokenGreaterEqual:
		return c >= 0, nil
	default:
		return false, fmt.Errorf("%w: unsupported operator %s", ErrMalformedClause, operator)
	}
}

func (e *FunctionExpr) bind(b *binder) (predicate, error) {
	target, tk, err := b.operand(e.Target)
	if err != nil {
		return nil, err
	}
	args := make([]getter, len(e.Args))
	kinds := make([]table.Kind, len(e.Args))
	for i, a := range e.Args {
		if args[i], kinds[i], err = b.operand(a); err != nil {
			return nil, err
		}
	}
	if err := e.Function.Check(tk, kinds); err != nil {
		return nil, fmt.Errorf("%s: %w", e.Function.Name(), err)
	}

	f := e.Function
	return func(row table.Row) (bool, error) {
		values := make([]Value, len(args))
		for i, arg := range args {
			values[i] = arg(row)
		}
		return f.Evaluate(target(row), values)
	}, nil
}

// applyMust keeps the rows that satisfy every condition. All conditions are
// bound before any row is tested, so type errors surface on empty tables too.
func (ctx *ExecutionContext) applyMust(w *workingTable, must *MustClause) (*table.TableResult, error) {
	b := &binder{ctx: ctx, w: w}
	predicates := make([]predicate, len(must.Conditions))
	for i, cond := range must.Conditions {
		p, err := cond.bind(b)
		if err != nil {
			return nil, err
		}
		predicates[i] = p
	}
	return filterRows(w.result, predicates)
}

// filterRows returns a table holding the rows accepted by all predicates
func filterRows(t *table.TableResult, predicates []predicate) (*table.TableResult, error) {
	var kept []table.Row
	for _, row := range t.Rows {
		match := true
		for _, p := range predicates {
			ok, err := p(row)
			if err != nil {
				return nil, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			kept = append(kept, append(table.Row(nil), row...))
		}
	}
	return table.FromRows(t.Columns, kept), nil
}
