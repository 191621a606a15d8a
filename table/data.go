package table

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Data is a single typed cell.
//
// Value holds a string for String and Unique, a rune for Char, a bool for
// Boolean, a time.Time for DateTime and a decimal.Decimal for every
// arithmetic type.
type Data struct {
	Type  DataType
	Value interface{}
}

// NewData normalizes a Go value into the representation used for dt
func NewData(dt DataType, v interface{}) (Data, error) {
	switch dt.Kind() {
	case KindArithmetic:
		d, err := toDecimal(v)
		if err != nil {
			return Data{}, fmt.Errorf("%s value: %w", dt, err)
		}
		return Data{Type: dt, Value: d}, nil
	case KindBoolean:
		switch val := v.(type) {
		case bool:
			return Data{Type: dt, Value: val}, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(val)) {
			case "true", "1":
				return Data{Type: dt, Value: true}, nil
			case "false", "0", "":
				return Data{Type: dt, Value: false}, nil
			}
		}
		return Data{}, fmt.Errorf("Boolean value: cannot use %T(%v)", v, v)
	case KindChar:
		switch val := v.(type) {
		case rune:
			return Data{Type: dt, Value: val}, nil
		case byte:
			return Data{Type: dt, Value: rune(val)}, nil
		case string:
			r := []rune(val)
			if len(r) != 1 {
				return Data{}, fmt.Errorf("Char value: %q is not a single character", val)
			}
			return Data{Type: dt, Value: r[0]}, nil
		}
		return Data{}, fmt.Errorf("Char value: cannot use %T", v)
	}

	switch dt {
	case DateTime:
		switch val := v.(type) {
		case time.Time:
			return Data{Type: dt, Value: val}, nil
		case string:
			t, err := time.Parse(time.RFC3339Nano, val)
			if err != nil {
				return Data{}, fmt.Errorf("DateTime value: %w", err)
			}
			return Data{Type: dt, Value: t}, nil
		}
		return Data{}, fmt.Errorf("DateTime value: cannot use %T", v)
	case Unique:
		switch val := v.(type) {
		case uuid.UUID:
			return Data{Type: dt, Value: val.String()}, nil
		case [16]byte:
			return Data{Type: dt, Value: uuid.UUID(val).String()}, nil
		case string:
			return Data{Type: dt, Value: val}, nil
		case []byte:
			if len(val) == 16 {
				id, err := uuid.FromBytes(val)
				if err == nil {
					return Data{Type: dt, Value: id.String()}, nil
				}
			}
			return Data{Type: dt, Value: string(val)}, nil
		}
		return Data{}, fmt.Errorf("Unique value: cannot use %T", v)
	}

	switch val := v.(type) {
	case string:
		return Data{Type: dt, Value: val}, nil
	case []byte:
		return Data{Type: dt, Value: string(val)}, nil
	case nil:
		return Data{Type: dt, Value: ""}, nil
	default:
		return Data{Type: dt, Value: fmt.Sprintf("%v", val)}, nil
	}
}

// MustData is NewData for values known to be valid; it panics otherwise
func MustData(dt DataType, v interface{}) Data {
	d, err := NewData(dt, v)
	if err != nil {
		panic(err)
	}
	return d
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int8:
		return decimal.NewFromInt(int64(val)), nil
	case int16:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(val)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(val)), nil
	case uint16:
		return decimal.NewFromInt(int64(val)), nil
	case uint32:
		return decimal.NewFromInt(int64(val)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(val), 0), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case *big.Int:
		return decimal.NewFromBigInt(val, 0), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(val))
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("cannot use %T as a number", v)
	}
}

// DefaultData returns the zero value of a type. Unique columns get a fresh
// identifier on every call.
func DefaultData(dt DataType) Data {
	switch dt.Kind() {
	case KindArithmetic:
		return Data{Type: dt, Value: decimal.Zero}
	case KindBoolean:
		return Data{Type: dt, Value: false}
	case KindChar:
		return Data{Type: dt, Value: ' '}
	}
	switch dt {
	case DateTime:
		return Data{Type: dt, Value: time.Time{}.UTC()}
	case Unique:
		return Data{Type: dt, Value: uuid.NewString()}
	default:
		return Data{Type: dt, Value: ""}
	}
}

// Kind returns the comparison kind of the cell
func (d Data) Kind() Kind {
	return d.Type.Kind()
}

// Decimal returns the numeric value of an arithmetic cell
func (d Data) Decimal() (decimal.Decimal, bool) {
	v, ok := d.Value.(decimal.Decimal)
	return v, ok
}

// String renders the canonical text form of the cell
func (d Data) String() string {
	switch v := d.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case rune:
		return string(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Equal reports whether two cells hold the same type and value
func (d Data) Equal(o Data) bool {
	if d.Type != o.Type {
		return false
	}
	switch v := d.Value.(type) {
	case decimal.Decimal:
		ov, ok := o.Value.(decimal.Decimal)
		return ok && v.Equal(ov)
	case time.Time:
		ov, ok := o.Value.(time.Time)
		return ok && v.Equal(ov)
	default:
		return d.Value == o.Value
	}
}
