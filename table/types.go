// Package table provides the typed cell model and the TableResult entity shared
// by the MHQL engine, the column sources and the output formatters.
//
// A TableResult keeps two redundant views of its cells: column-major
// (Column.Data) and row-major (Rows). RowsFromColumns and ColumnsFromRows
// reconcile one view from the other.
package table

import (
	"fmt"
	"strings"
)

// DataType is the storage type of a column
type DataType int

const (
	String DataType = iota
	Char
	Boolean
	Byte
	SByte
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Single
	Double
	Decimal
	BigInteger
	DateTime
	Unique
	AutoInt
)

var dataTypeNames = map[DataType]string{
	String:     "String",
	Char:       "Char",
	Boolean:    "Boolean",
	Byte:       "Byte",
	SByte:      "SByte",
	Int16:      "Int16",
	UInt16:     "UInt16",
	Int32:      "Int32",
	UInt32:     "UInt32",
	Int64:      "Int64",
	UInt64:     "UInt64",
	Single:     "Single",
	Double:     "Double",
	Decimal:    "Decimal",
	BigInteger: "BigInteger",
	DateTime:   "DateTime",
	Unique:     "Unique",
	AutoInt:    "AutoInt",
}

// String returns the type name
func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// ParseDataType resolves a type name case-insensitively
func ParseDataType(name string) (DataType, error) {
	for t, n := range dataTypeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return String, fmt.Errorf("unknown data type %q", name)
}

// Kind returns the comparison kind the storage type collapses to.
func (t DataType) Kind() Kind {
	switch t {
	case String, DateTime, Unique:
		return KindString
	case Char:
		return KindChar
	case Boolean:
		return KindBoolean
	default:
		return KindArithmetic
	}
}

// IsArithmetic reports whether values of this type are stored as decimals
func (t DataType) IsArithmetic() bool {
	return t.Kind() == KindArithmetic
}

// Kind is the comparison kind of a value. Values of different kinds never
// compare.
type Kind int

const (
	KindString Kind = iota
	KindChar
	KindBoolean
	KindArithmetic
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindChar:
		return "Char"
	case KindBoolean:
		return "Boolean"
	case KindArithmetic:
		return "Arithmetic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// AggregateTag marks a column synthesized by the USE clause
type AggregateTag string

const (
	TagNone  AggregateTag = ""
	TagCount AggregateTag = "COUNT"
	TagSum   AggregateTag = "SUM"
	TagAvg   AggregateTag = "AVG"
	TagMax   AggregateTag = "MAX"
	TagMin   AggregateTag = "MIN"
	// TagIndex marks a raw $n index reference
	TagIndex AggregateTag = "$"
)

// IsAggregate reports whether the tag names an aggregate function
func (t AggregateTag) IsAggregate() bool {
	switch t {
	case TagCount, TagSum, TagAvg, TagMax, TagMin:
		return true
	}
	return false
}
