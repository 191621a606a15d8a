package query

import (
	"fmt"
	"strings"
)

// extractClause locates the first top-level occurrence of keyword in cmd and
// returns the text up to the next top-level clause keyword as body, and the
// text from that keyword onward as remainder.
func extractClause(cmd string, keyword TokenType, allowEmpty bool) (string, string, error) {
	tokens, err := Tokenize(cmd)
	if err != nil {
		return "", "", err
	}

	start := -1
	for i, tok := range tokens {
		if tok.Depth == 0 && tok.Type == keyword {
			start = i
			break
		}
	}
	if start < 0 {
		return "", "", fmt.Errorf("%w: %s not found", ErrMalformedClause, keyword)
	}

	end := len(cmd)
	for _, tok := range tokens[start+1:] {
		if tok.Depth == 0 && isClauseKeyword(tok.Type) {
			end = tok.Pos
			break
		}
	}

	body := strings.TrimSpace(cmd[tokens[start].End:end])
	if body == "" && !allowEmpty {
		return "", "", fmt.Errorf("%w: %s has an empty body", ErrMalformedClause, keyword)
	}
	return body, strings.TrimSpace(cmd[end:]), nil
}

// ExtractUse extracts the projection list of a USE clause
func ExtractUse(cmd string) (string, string, error) {
	return extractClause(cmd, TokenUse, false)
}

// ExtractFrom extracts the table name of a FROM clause
func ExtractFrom(cmd string) (string, string, error) {
	return extractClause(cmd, TokenFrom, false)
}

// ExtractMust extracts the conjuncts of a MUST clause
func ExtractMust(cmd string) (string, string, error) {
	return extractClause(cmd, TokenMust, false)
}

// ExtractGroupBy extracts the grouping column of a GROUPBY clause
func ExtractGroupBy(cmd string) (string, string, error) {
	return extractClause(cmd, TokenGroupBy, false)
}

// ExtractOrderBy extracts the sort keys of an ORDERBY clause
func ExtractOrderBy(cmd string) (string, string, error) {
	return extractClause(cmd, TokenOrderBy, false)
}

// ExtractCOrderBy extracts the direction of a CORDERBY clause, which may be
// omitted
func ExtractCOrderBy(cmd string) (string, string, error) {
	return extractClause(cmd, TokenCOrderBy, true)
}

// ExtractSubRow extracts the parameters of a SUBROW clause
func ExtractSubRow(cmd string) (string, string, error) {
	return extractClause(cmd, TokenSubRow, false)
}

// ExtractSubCol extracts the parameters of a SUBCOL clause
func ExtractSubCol(cmd string) (string, string, error) {
	return extractClause(cmd, TokenSubCol, false)
}

// ExtractDelRow extracts the parameters of a DELROW clause
func ExtractDelRow(cmd string) (string, string, error) {
	return extractClause(cmd, TokenDelRow, false)
}

// ExtractDelCol extracts the parameters of a DELCOL clause
func ExtractDelCol(cmd string) (string, string, error) {
	return extractClause(cmd, TokenDelCol, false)
}

// ExtractAddRow extracts the row count of an ADDROW clause
func ExtractAddRow(cmd string) (string, string, error) {
	return extractClause(cmd, TokenAddRow, false)
}

var extractors = map[TokenType]func(string) (string, string, error){
	TokenUse:      ExtractUse,
	TokenFrom:     ExtractFrom,
	TokenMust:     ExtractMust,
	TokenGroupBy:  ExtractGroupBy,
	TokenOrderBy:  ExtractOrderBy,
	TokenCOrderBy: ExtractCOrderBy,
	TokenSubRow:   ExtractSubRow,
	TokenSubCol:   ExtractSubCol,
	TokenDelRow:   ExtractDelRow,
	TokenDelCol:   ExtractDelCol,
	TokenAddRow:   ExtractAddRow,
}

// ExtractAs splits a projection term "expr AS alias". The alias is empty when
// the term has no top-level AS.
func ExtractAs(term string) (string, string, error) {
	tokens, err := Tokenize(term)
	if err != nil {
		return "", "", err
	}

	for i, tok := range tokens {
		if tok.Depth != 0 || tok.Type != TokenAs {
			continue
		}
		expr := strings.TrimSpace(term[:tok.Pos])
		if expr == "" {
			return "", "", fmt.Errorf("%w: AS without an expression in %q", ErrMalformedClause, term)
		}
		rest := tokens[i+1:]
		if len(rest) != 1 || !isName(rest[0]) {
			return "", "", fmt.Errorf("%w: AS must be followed by a single name in %q", ErrMalformedClause, term)
		}
		return expr, rest[0].Value, nil
	}
	return strings.TrimSpace(term), "", nil
}

// SplitAnd splits a MUST body into its conjuncts at top-level AND keywords.
// AND inside brackets, braces or literals does not split.
func SplitAnd(body string) ([]string, error) {
	tokens, err := Tokenize(body)
	if err != nil {
		return nil, err
	}

	var conjuncts []string
	last := 0
	for _, tok := range tokens {
		if tok.Depth != 0 || tok.Type != TokenAnd {
			continue
		}
		conjuncts = append(conjuncts, strings.TrimSpace(body[last:tok.Pos]))
		last = tok.End
	}
	conjuncts = append(conjuncts, strings.TrimSpace(body[last:]))

	for i, c := range conjuncts {
		if c == "" {
			return nil, fmt.Errorf("%w: empty condition %d in %q", ErrMalformedClause, i+1, body)
		}
	}
	return conjuncts, nil
}
