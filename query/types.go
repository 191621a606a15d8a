package query

import (
	"github.com/mertcandav/MochaDB-sub001/table"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Clause keywords
	TokenUse TokenType = iota
	TokenFrom
	TokenMust
	TokenGroupBy
	TokenOrderBy
	TokenCOrderBy
	TokenSubRow
	TokenSubCol
	TokenDelRow
	TokenDelCol
	TokenAddRow
	TokenReturn
	TokenRemove

	// Modifier keywords
	TokenAnd
	TokenAs
	TokenAsc
	TokenDesc
	TokenIn
	TokenInEq

	// Operators
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString   // "..."
	TokenChar     // 'c'
	TokenNumber   // #123.45
	TokenInt      // 123
	TokenBool     // TRUE, FALSE
	TokenIndexRef // $3
	TokenIdent
	TokenFunction // condition or aggregate function name

	// Delimiters
	TokenComma      // ,
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenUse:          "USE",
	TokenFrom:         "FROM",
	TokenMust:         "MUST",
	TokenGroupBy:      "GROUPBY",
	TokenOrderBy:      "ORDERBY",
	TokenCOrderBy:     "CORDERBY",
	TokenSubRow:       "SUBROW",
	TokenSubCol:       "SUBCOL",
	TokenDelRow:       "DELROW",
	TokenDelCol:       "DELCOL",
	TokenAddRow:       "ADDROW",
	TokenReturn:       "RETURN",
	TokenRemove:       "REMOVE",
	TokenAnd:          "AND",
	TokenAs:           "AS",
	TokenAsc:          "ASC",
	TokenDesc:         "DESC",
	TokenIn:           "IN",
	TokenInEq:         "INEQ",
	TokenEqual:        "==",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenString:       "string",
	TokenChar:         "char",
	TokenNumber:       "number",
	TokenInt:          "integer",
	TokenBool:         "boolean",
	TokenIndexRef:     "index reference",
	TokenIdent:        "identifier",
	TokenFunction:     "function",
	TokenComma:        ",",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenEOF:          "end of command",
	TokenError:        "invalid token",
}

// String returns the keyword or a description of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token represents a lexical token.
//
// Pos and End are byte offsets into the lexed text. Depth is the bracket
// nesting level the token sits at; brackets carry the depth outside them.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
	End   int
	Depth int
}

// Terminal is the keyword that ends a command
type Terminal int

const (
	TerminalNone Terminal = iota
	TerminalReturn
	TerminalRemove
)

// Command is a parsed MHQL command
type Command struct {
	Clauses  []Clause
	Terminal Terminal
}

// Clause is one keyword-delimited segment of a command
type Clause interface {
	Keyword() TokenType
}

// UseClause represents USE <items> [FROM <table>]
type UseClause struct {
	Items []UseItem
	From  string // empty when no FROM clause is present
}

// UseItem is one projection term of a USE clause
type UseItem struct {
	Table    string             // table part of table.column without FROM
	Column   string             // column name, empty for * and COUNT(*)
	Star     bool               // * (all columns, or all tables without FROM)
	Function table.AggregateTag // aggregate function or $ index reference
	Index    int                // $n index
	Alias    string             // AS name
}

// MustClause represents MUST <conjunct> [AND <conjunct> ...]
type MustClause struct {
	Conditions []Condition
}

// GroupByClause represents GROUPBY <column>
type GroupByClause struct {
	Column ColumnRef
}

// OrderByItem represents a column to sort by
type OrderByItem struct {
	Column ColumnRef
	Desc   bool
}

// OrderByClause represents ORDERBY <col> [ASC|DESC], ...
type OrderByClause struct {
	Items []OrderByItem
}

// COrderByClause represents CORDERBY [ASC|DESC]
type COrderByClause struct {
	Desc bool
}

// PageClause represents SUBROW, SUBCOL, DELROW and DELCOL
type PageClause struct {
	Op     TokenType
	Params []int
}

// AddRowClause represents ADDROW <n>
type AddRowClause struct {
	Count int
}

func (*UseClause) Keyword() TokenType      { return TokenUse }
func (*MustClause) Keyword() TokenType     { return TokenMust }
func (*GroupByClause) Keyword() TokenType  { return TokenGroupBy }
func (*OrderByClause) Keyword() TokenType  { return TokenOrderBy }
func (*COrderByClause) Keyword() TokenType { return TokenCOrderBy }
func (c *PageClause) Keyword() TokenType   { return c.Op }
func (*AddRowClause) Keyword() TokenType   { return TokenAddRow }

// ColumnRef references a column by name or, without a FROM table, by index
type ColumnRef struct {
	Name    string
	Index   int
	IsIndex bool
}

// String returns the reference as written
func (r ColumnRef) String() string {
	return r.Name
}

// Operand is one side of a condition: a literal or a column reference
type Operand struct {
	Literal *Value
	Ref     ColumnRef
}

// IsLiteral reports whether the operand is a literal value
func (o Operand) IsLiteral() bool {
	return o.Literal != nil
}

// Condition is one conjunct of a MUST clause
type Condition interface {
	// bind resolves column references and type-checks the condition
	// against the table it will filter.
	bind(b *binder) (predicate, error)
}

// predicate tests one row of the bound table
type predicate func(row table.Row) (bool, error)

// ComparisonExpr represents ref op operand with op one of == != < > <= >=
type ComparisonExpr struct {
	Left     Operand
	Operator TokenType
	Right    Operand
}

// FunctionExpr represents a condition function applied to a target
type FunctionExpr struct {
	Function Function
	Target   Operand
	Args     []Operand
}

// SubqueryExpr represents IN <col> {subquery} and INEQ <col> {subquery}
type SubqueryExpr struct {
	Column ColumnRef
	Query  string
	Scalar bool // INEQ
}
