package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// phase tracks how far a command has progressed through the clause order
type phase int

const (
	phaseStart phase = iota
	phaseUse
	phaseMust
	phaseGroup
	phaseOrder
	phaseReshape
)

// Parser peels clauses off the front of a command one at a time
type Parser struct {
	rest  string
	phase phase
	cmd   *Command
}

// Parse parses and validates a complete MHQL command. Clause order is checked
// for the whole command before anything is executed.
func Parse(input string) (*Command, error) {
	if err := ValidateQuery(input); err != nil {
		return nil, err
	}

	text, err := StripComments(input)
	if err != nil {
		return nil, err
	}
	if _, err := Tokenize(text); err != nil {
		return nil, err
	}

	p := &Parser{rest: strings.TrimSpace(text), cmd: &Command{}}
	return p.parse()
}

func (p *Parser) parse() (*Command, error) {
	for p.rest != "" {
		tok := NewLexer(p.rest).NextToken()

		if isTerminal(tok.Type) {
			if p.phase == phaseStart {
				return nil, fmt.Errorf("%w: command must start with USE, got %s", ErrMalformedClause, tok.Type)
			}
			if tail := strings.TrimSpace(p.rest[tok.End:]); tail != "" {
				return nil, fmt.Errorf("%w: unexpected %q after %s", ErrUnknownClause, excerpt(tail), tok.Type)
			}
			if tok.Type == TokenReturn {
				p.cmd.Terminal = TerminalReturn
			} else {
				p.cmd.Terminal = TerminalRemove
			}
			return p.cmd, nil
		}

		extract, ok := extractors[tok.Type]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClause, excerpt(p.rest))
		}
		if err := p.advance(tok.Type); err != nil {
			return nil, err
		}

		body, rest, err := extract(p.rest)
		if err != nil {
			return nil, err
		}
		p.rest = rest

		clause, err := p.parseClause(tok.Type, body)
		if err != nil {
			return nil, err
		}
		p.cmd.Clauses = append(p.cmd.Clauses, clause)
	}

	if p.phase == phaseStart {
		return nil, fmt.Errorf("%w: empty command", ErrMalformedClause)
	}
	return p.cmd, nil
}

// advance enforces USE first, then MUST before GROUPBY before ORDERBY, then
// the reshaping clauses
func (p *Parser) advance(keyword TokenType) error {
	switch keyword {
	case TokenUse:
		if p.phase != phaseStart {
			return fmt.Errorf("%w: USE must be the first clause", ErrOutOfOrderClause)
		}
		p.phase = phaseUse
		return nil
	case TokenFrom:
		return fmt.Errorf("%w: FROM must directly follow USE", ErrOutOfOrderClause)
	}

	if p.phase == phaseStart {
		return fmt.Errorf("%w: command must start with USE, got %s", ErrMalformedClause, keyword)
	}

	switch keyword {
	case TokenMust:
		if p.phase > phaseMust {
			return fmt.Errorf("%w: MUST must precede GROUPBY, ORDERBY and reshaping clauses", ErrOutOfOrderClause)
		}
		p.phase = phaseMust
	case TokenGroupBy:
		if p.phase > phaseMust {
			return fmt.Errorf("%w: GROUPBY must appear once, before ORDERBY and reshaping clauses", ErrOutOfOrderClause)
		}
		p.phase = phaseGroup
	case TokenOrderBy:
		if p.phase > phaseGroup {
			return fmt.Errorf("%w: ORDERBY must appear once, after MUST and GROUPBY", ErrOutOfOrderClause)
		}
		p.phase = phaseOrder
	default:
		p.phase = phaseReshape
	}
	return nil
}

func (p *Parser) parseClause(keyword TokenType, body string) (Clause, error) {
	switch keyword {
	case TokenUse:
		return p.parseUse(body)
	case TokenMust:
		return parseMust(body)
	case TokenGroupBy:
		ref, err := parseColumnRef(body)
		if err != nil {
			return nil, fmt.Errorf("GROUPBY: %w", err)
		}
		return &GroupByClause{Column: ref}, nil
	case TokenOrderBy:
		return parseOrderBy(body)
	case TokenCOrderBy:
		return parseCOrderBy(body)
	case TokenAddRow:
		params, err := parsePageParams(keyword, body, 1)
		if err != nil {
			return nil, err
		}
		return &AddRowClause{Count: params[0]}, nil
	default:
		params, err := parsePageParams(keyword, body, 2)
		if err != nil {
			return nil, err
		}
		return &PageClause{Op: keyword, Params: params}, nil
	}
}

// parseUse parses the USE body and the FROM clause that may follow it
func (p *Parser) parseUse(body string) (*UseClause, error) {
	use := &UseClause{}

	if tok := NewLexer(p.rest).NextToken(); tok.Type == TokenFrom {
		from, rest, err := ExtractFrom(p.rest)
		if err != nil {
			return nil, err
		}
		tokens, err := Tokenize(from)
		if err != nil {
			return nil, err
		}
		if len(tokens) != 1 || !isName(tokens[0]) {
			return nil, fmt.Errorf("%w: FROM expects a single table name, got %q", ErrMalformedClause, from)
		}
		use.From = tokens[0].Value
		p.rest = rest
	}

	terms, err := SplitParams(body)
	if err != nil {
		return nil, err
	}
	for _, term := range terms {
		item, err := parseUseItem(term, use.From != "")
		if err != nil {
			return nil, fmt.Errorf("USE: %w", err)
		}
		use.Items = append(use.Items, item)
	}
	return use, nil
}

func parseUseItem(term string, hasFrom bool) (UseItem, error) {
	if term == "" {
		return UseItem{}, fmt.Errorf("%w: empty projection term", ErrMalformedClause)
	}
	expr, alias, err := ExtractAs(term)
	if err != nil {
		return UseItem{}, err
	}
	tokens, err := Tokenize(expr)
	if err != nil {
		return UseItem{}, err
	}

	item := UseItem{Alias: alias}
	switch {
	case len(tokens) == 1 && tokens[0].Type == TokenIdent && tokens[0].Value == "*":
		if alias != "" {
			return UseItem{}, fmt.Errorf("%w: * cannot have an alias", ErrMalformedClause)
		}
		item.Star = true

	case len(tokens) == 1 && isName(tokens[0]):
		if hasFrom {
			item.Column = tokens[0].Value
			break
		}
		tbl, col, _ := strings.Cut(tokens[0].Value, ".")
		if col == "" && alias != "" {
			return UseItem{}, fmt.Errorf("%w: table %s cannot have an alias", ErrMalformedClause, tbl)
		}
		item.Table, item.Column = tbl, col

	case len(tokens) == 1 && tokens[0].Type == TokenIndexRef:
		if !hasFrom {
			return UseItem{}, fmt.Errorf("%w: $%s needs a FROM table", ErrMalformedClause, tokens[0].Value)
		}
		n, err := strconv.Atoi(tokens[0].Value)
		if err != nil || n < 0 {
			return UseItem{}, fmt.Errorf("%w: bad column index $%s", ErrInvalidArgument, tokens[0].Value)
		}
		item.Function, item.Index = table.TagIndex, n

	case len(tokens) > 1 && tokens[0].Type == TokenFunction && tokens[1].Type == TokenLeftParen:
		if !hasFrom {
			return UseItem{}, fmt.Errorf("%w: %s needs a FROM table", ErrMalformedClause, tokens[0].Value)
		}
		name, params, err := SplitCall(expr)
		if err != nil {
			return UseItem{}, err
		}
		tag := table.AggregateTag(strings.ToUpper(name))
		if !tag.IsAggregate() {
			return UseItem{}, fmt.Errorf("%w: %s is not an aggregate function", ErrMalformedClause, name)
		}
		item.Function = tag
		switch {
		case len(params) == 0 || (len(params) == 1 && params[0] == "*"):
			if tag != table.TagCount {
				return UseItem{}, fmt.Errorf("%w: %s needs a column", ErrInvalidArgument, tag)
			}
		case len(params) == 1:
			ref, err := Tokenize(params[0])
			if err != nil {
				return UseItem{}, err
			}
			if len(ref) != 1 || !isName(ref[0]) {
				return UseItem{}, fmt.Errorf("%w: %s expects a column name, got %q", ErrInvalidArgument, tag, params[0])
			}
			item.Column = ref[0].Value
		default:
			return UseItem{}, fmt.Errorf("%w: %s expects one column, got %d arguments", ErrInvalidArgument, tag, len(params))
		}

	default:
		return UseItem{}, fmt.Errorf("%w: cannot project %q", ErrMalformedClause, expr)
	}
	return item, nil
}

func parseMust(body string) (*MustClause, error) {
	conjuncts, err := SplitAnd(body)
	if err != nil {
		return nil, err
	}
	must := &MustClause{}
	for _, text := range conjuncts {
		cond, err := parseCondition(text)
		if err != nil {
			return nil, fmt.Errorf("MUST: %w", err)
		}
		must.Conditions = append(must.Conditions, cond)
	}
	return must, nil
}

// parseCondition parses a single conjunct
func parseCondition(text string) (Condition, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty condition", ErrMalformedClause)
	}

	switch first := tokens[0]; {
	case first.Type == TokenIn || first.Type == TokenInEq:
		return parseSubqueryCondition(text, tokens)

	case first.Type == TokenFunction && len(tokens) > 1 && tokens[1].Type == TokenLeftParen:
		name, params, err := SplitCall(text)
		if err != nil {
			return nil, err
		}
		if len(params) == 0 || params[0] == "" {
			return nil, fmt.Errorf("%w: %s needs a target", ErrInvalidArgument, name)
		}
		return newFunctionExpr(name, params[0], params[1:])
	}

	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: incomplete condition %q", ErrMalformedClause, text)
	}

	target, err := parseOperand(text[tokens[0].Pos:tokens[0].End])
	if err != nil {
		return nil, err
	}

	switch op := tokens[1]; op.Type {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		right, err := parseOperand(text[op.End:])
		if err != nil {
			return nil, err
		}
		return &ComparisonExpr{Left: target, Operator: op.Type, Right: right}, nil
	case TokenFunction:
		params, err := SplitParams(text[op.End:])
		if err != nil {
			return nil, err
		}
		expr, err := newFunctionExpr(op.Value, "", params)
		if err != nil {
			return nil, err
		}
		expr.Target = target
		return expr, nil
	default:
		return nil, fmt.Errorf("%w: expected an operator or function after %q, got %q", ErrMalformedClause, tokens[0].Value, op.Value)
	}
}

// newFunctionExpr builds a function condition. target is parsed unless empty.
func newFunctionExpr(name, target string, params []string) (*FunctionExpr, error) {
	f, ok := globalRegistry.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a condition function", ErrMalformedClause, name)
	}
	if err := checkArity(f, len(params)); err != nil {
		return nil, err
	}

	expr := &FunctionExpr{Function: f}
	if target != "" {
		t, err := parseOperand(target)
		if err != nil {
			return nil, err
		}
		expr.Target = t
	}
	for _, param := range params {
		arg, err := parseOperand(param)
		if err != nil {
			return nil, err
		}
		expr.Args = append(expr.Args, arg)
	}
	return expr, nil
}

func parseSubqueryCondition(text string, tokens []Token) (Condition, error) {
	keyword := tokens[0].Type
	if len(tokens) < 4 || tokens[2].Type != TokenLeftBrace {
		return nil, fmt.Errorf("%w: %s expects a column and a {subquery}", ErrMalformedClause, keyword)
	}
	ref, err := parseColumnRef(text[tokens[1].Pos:tokens[1].End])
	if err != nil {
		return nil, err
	}

	end, err := MatchBrace(text, tokens[2].Pos, '{', '}')
	if err != nil {
		return nil, err
	}
	if tail := strings.TrimSpace(text[end+1:]); tail != "" {
		return nil, fmt.Errorf("%w: unexpected %q after %s subquery", ErrMalformedClause, excerpt(tail), keyword)
	}
	sub := strings.TrimSpace(text[tokens[2].End:end])
	if sub == "" {
		return nil, fmt.Errorf("%w: empty %s subquery", ErrMalformedClause, keyword)
	}
	return &SubqueryExpr{Column: ref, Query: sub, Scalar: keyword == TokenInEq}, nil
}

// parseOperand parses a literal or a column reference
func parseOperand(text string) (Operand, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return Operand{}, err
	}
	if len(tokens) != 1 {
		return Operand{}, fmt.Errorf("%w: expected a single value, got %q", ErrMalformedClause, strings.TrimSpace(text))
	}
	v, ok, err := parseLiteral(tokens[0])
	if err != nil {
		return Operand{}, err
	}
	if ok {
		return Operand{Literal: &v}, nil
	}
	ref, err := columnRef(tokens[0])
	if err != nil {
		return Operand{}, err
	}
	return Operand{Ref: ref}, nil
}

// parseColumnRef parses a column name or index
func parseColumnRef(text string) (ColumnRef, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return ColumnRef{}, err
	}
	if len(tokens) != 1 {
		return ColumnRef{}, fmt.Errorf("%w: expected a single column, got %q", ErrMalformedClause, strings.TrimSpace(text))
	}
	return columnRef(tokens[0])
}

func columnRef(tok Token) (ColumnRef, error) {
	switch tok.Type {
	case TokenIdent, TokenFunction:
		if tok.Value == "*" {
			return ColumnRef{}, fmt.Errorf("%w: * is not a column", ErrMalformedClause)
		}
		return ColumnRef{Name: tok.Value}, nil
	case TokenInt, TokenIndexRef:
		n, err := strconv.Atoi(tok.Value)
		if err != nil || n < 0 {
			return ColumnRef{}, fmt.Errorf("%w: bad column index %q", ErrInvalidArgument, tok.Value)
		}
		return ColumnRef{Name: tok.Value, Index: n, IsIndex: true}, nil
	}
	return ColumnRef{}, fmt.Errorf("%w: expected a column, got %s %q", ErrMalformedClause, tok.Type, tok.Value)
}

func parseOrderBy(body string) (*OrderByClause, error) {
	items, err := SplitParams(body)
	if err != nil {
		return nil, err
	}
	clause := &OrderByClause{}
	for _, item := range items {
		tokens, err := Tokenize(item)
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 || len(tokens) > 2 {
			return nil, fmt.Errorf("%w: ORDERBY expects column [ASC|DESC], got %q", ErrMalformedClause, item)
		}
		ref, err := columnRef(tokens[0])
		if err != nil {
			return nil, fmt.Errorf("ORDERBY: %w", err)
		}
		key := OrderByItem{Column: ref}
		if len(tokens) == 2 {
			switch tokens[1].Type {
			case TokenAsc:
			case TokenDesc:
				key.Desc = true
			default:
				return nil, fmt.Errorf("%w: ORDERBY direction must be ASC or DESC, got %q", ErrMalformedClause, tokens[1].Value)
			}
		}
		clause.Items = append(clause.Items, key)
	}
	return clause, nil
}

func parseCOrderBy(body string) (*COrderByClause, error) {
	tokens, err := Tokenize(body)
	if err != nil {
		return nil, err
	}
	switch {
	case len(tokens) == 0:
		return &COrderByClause{}, nil
	case len(tokens) == 1 && tokens[0].Type == TokenAsc:
		return &COrderByClause{}, nil
	case len(tokens) == 1 && tokens[0].Type == TokenDesc:
		return &COrderByClause{Desc: true}, nil
	}
	return nil, fmt.Errorf("%w: CORDERBY direction must be ASC or DESC, got %q", ErrMalformedClause, body)
}

// parsePageParams parses one to maxParams integer parameters, each at least 1
func parsePageParams(keyword TokenType, body string, maxParams int) ([]int, error) {
	params, err := SplitParams(body)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 || len(params) > maxParams {
		return nil, fmt.Errorf("%w: %s accepts 1 to %d parameters, got %d", ErrInvalidArgument, keyword, maxParams, len(params))
	}

	values := make([]int, len(params))
	for i, param := range params {
		n, err := strconv.Atoi(param)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s parameter %q must be an integer of at least 1", ErrInvalidArgument, keyword, param)
		}
		values[i] = n
	}
	return values, nil
}

// excerpt shortens text for error messages
func excerpt(text string) string {
	const limit = 32
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
