package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// Value is a typed comparison value. Exactly one payload field is meaningful,
// selected by Kind.
type Value struct {
	Kind table.Kind
	Str  string
	Char rune
	Bool bool
	Num  decimal.Decimal
}

// StringValue creates a String value
func StringValue(s string) Value { return Value{Kind: table.KindString, Str: s} }

// CharValue creates a Char value
func CharValue(c rune) Value { return Value{Kind: table.KindChar, Char: c} }

// BoolValue creates a Boolean value
func BoolValue(b bool) Value { return Value{Kind: table.KindBoolean, Bool: b} }

// NumberValue creates an Arithmetic value
func NumberValue(d decimal.Decimal) Value { return Value{Kind: table.KindArithmetic, Num: d} }

// ValueOf converts a cell to its comparison value
func ValueOf(d table.Data) Value {
	switch d.Kind() {
	case table.KindChar:
		c, _ := d.Value.(rune)
		return CharValue(c)
	case table.KindBoolean:
		b, _ := d.Value.(bool)
		return BoolValue(b)
	case table.KindArithmetic:
		n, _ := d.Decimal()
		return NumberValue(n)
	default:
		return StringValue(d.String())
	}
}

// String renders the value the way it would be written as a literal
func (v Value) String() string {
	switch v.Kind {
	case table.KindChar:
		return strconv.QuoteRune(v.Char)
	case table.KindBoolean:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case table.KindArithmetic:
		return "#" + v.Num.String()
	default:
		return strconv.Quote(v.Str)
	}
}

// Key returns a string that is equal for two values exactly when they are
// equal
func (v Value) Key() string {
	switch v.Kind {
	case table.KindChar:
		return "c:" + string(v.Char)
	case table.KindBoolean:
		return "b:" + strconv.FormatBool(v.Bool)
	case table.KindArithmetic:
		return "n:" + v.Num.String()
	default:
		return "s:" + v.Str
	}
}

func checkKinds(a, b table.Kind) error {
	if a != b {
		return fmt.Errorf("%w: cannot compare %s with %s", ErrIncompatibleTypes, a, b)
	}
	return nil
}

func checkOrdered(k table.Kind) error {
	if k == table.KindString {
		return fmt.Errorf("%w: ordering is not defined for %s values", ErrIncompatibleTypes, k)
	}
	return nil
}

// Equal reports whether two values of the same kind are equal
func (v Value) Equal(o Value) (bool, error) {
	if err := checkKinds(v.Kind, o.Kind); err != nil {
		return false, err
	}
	switch v.Kind {
	case table.KindChar:
		return v.Char == o.Char, nil
	case table.KindBoolean:
		return v.Bool == o.Bool, nil
	case table.KindArithmetic:
		return v.Num.Equal(o.Num), nil
	default:
		return v.Str == o.Str, nil
	}
}

// Compare orders two values of the same kind. String values have no order.
func (v Value) Compare(o Value) (int, error) {
	if err := checkKinds(v.Kind, o.Kind); err != nil {
		return 0, err
	}
	if err := checkOrdered(v.Kind); err != nil {
		return 0, err
	}
	switch v.Kind {
	case table.KindChar:
		switch {
		case v.Char < o.Char:
			return -1, nil
		case v.Char > o.Char:
			return 1, nil
		}
		return 0, nil
	case table.KindBoolean:
		switch {
		case v.Bool == o.Bool:
			return 0, nil
		case v.Bool:
			return 1, nil
		}
		return -1, nil
	default:
		return v.Num.Cmp(o.Num), nil
	}
}

// parseLiteral converts a literal token to a value. The second result is
// false when the token is not a literal.
func parseLiteral(tok Token) (Value, bool, error) {
	switch tok.Type {
	case TokenString:
		return StringValue(tok.Value), true, nil
	case TokenChar:
		r := []rune(tok.Value)
		if len(r) != 1 {
			return Value{}, true, fmt.Errorf("%w: char literal '%s' must hold exactly one character", ErrInvalidArgument, tok.Value)
		}
		return CharValue(r[0]), true, nil
	case TokenNumber:
		d, err := decimal.NewFromString(tok.Value)
		if err != nil {
			return Value{}, true, fmt.Errorf("%w: #%s is not a number", ErrInvalidArgument, tok.Value)
		}
		return NumberValue(d), true, nil
	case TokenBool:
		return BoolValue(strings.EqualFold(tok.Value, "TRUE")), true, nil
	}
	return Value{}, false, nil
}
