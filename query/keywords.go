package query

import (
	"sort"
	"strings"
)

// keywords is the single table of reserved words recognised by the lexer.
// Lookups are case-insensitive.
var keywords = map[string]TokenType{
	"USE":      TokenUse,
	"FROM":     TokenFrom,
	"MUST":     TokenMust,
	"GROUPBY":  TokenGroupBy,
	"ORDERBY":  TokenOrderBy,
	"CORDERBY": TokenCOrderBy,
	"SUBROW":   TokenSubRow,
	"SUBCOL":   TokenSubCol,
	"DELROW":   TokenDelRow,
	"DELCOL":   TokenDelCol,
	"ADDROW":   TokenAddRow,
	"RETURN":   TokenReturn,
	"REMOVE":   TokenRemove,
	"AND":      TokenAnd,
	"AS":       TokenAs,
	"ASC":      TokenAsc,
	"DESC":     TokenDesc,
	"IN":       TokenIn,
	"INEQ":     TokenInEq,
	"TRUE":     TokenBool,
	"FALSE":    TokenBool,

	// condition functions
	"BETWEEN":     TokenFunction,
	"BIGGER":      TokenFunction,
	"LOWER":       TokenFunction,
	"EQUAL":       TokenFunction,
	"NOTEQUAL":    TokenFunction,
	"STARTW":      TokenFunction,
	"ENDW":        TokenFunction,
	"CONTAINS":    TokenFunction,
	"NOTCONTAINS": TokenFunction,

	// aggregate functions
	"COUNT": TokenFunction,
	"SUM":   TokenFunction,
	"AVG":   TokenFunction,
	"MAX":   TokenFunction,
	"MIN":   TokenFunction,
}

// identifierType determines if an identifier is a keyword
func identifierType(ident string) TokenType {
	if t, ok := keywords[strings.ToUpper(ident)]; ok {
		return t
	}
	return TokenIdent
}

// isName reports whether a token can name a column, table or alias.
// Function names are only functions when a "(" follows them, so they
// remain usable as names.
func isName(tok Token) bool {
	return (tok.Type == TokenIdent && tok.Value != "*") || tok.Type == TokenFunction
}

// isClauseKeyword reports whether a token starts a new clause. Clause
// bodies run up to the next top-level clause keyword.
func isClauseKeyword(t TokenType) bool {
	return t >= TokenUse && t <= TokenRemove
}

// isTerminal reports whether a token ends a command
func isTerminal(t TokenType) bool {
	return t == TokenReturn || t == TokenRemove
}

// Keywords returns every reserved word in sorted order
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
