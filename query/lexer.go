package query

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes MHQL commands
type Lexer struct {
	input string
	pos   int // offset of ch
	next  int // offset after ch
	ch    rune
	stack []rune // open brackets
	err   error
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += size
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readString reads a quoted literal. A backslash escapes the next character.
func (l *Lexer) readString(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote {
		if l.pos >= len(l.input) {
			return result.String(), false
		}
		if l.ch == '\\' {
			l.readChar()
			if l.pos >= len(l.input) {
				return result.String(), false
			}
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			default:
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}

	l.readChar() // skip closing quote
	return result.String(), true
}

// readNumber reads an optionally signed run of digits and decimal points
func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch == '-' || l.ch == '+' {
		l.readChar()
	}
	for unicode.IsDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readWord reads letters, digits, underscores, dots and signs following a #
// marker, so that malformed numbers surface as one token.
func (l *Lexer) readWord() string {
	start := l.pos
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.' || l.ch == '-' || l.ch == '+' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readIdentifier reads an identifier or keyword, including table.column
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) fail(err error, format string, args ...interface{}) Token {
	l.err = fmt.Errorf("%w: "+format, append([]interface{}{err}, args...)...)
	return Token{Type: TokenError, Value: l.err.Error(), Pos: l.pos, End: l.pos, Depth: len(l.stack)}
}

func (l *Lexer) open(t TokenType) Token {
	tok := Token{Type: t, Value: string(l.ch), Pos: l.pos, Depth: len(l.stack)}
	l.stack = append(l.stack, l.ch)
	l.readChar()
	tok.End = l.pos
	return tok
}

func (l *Lexer) close(t TokenType, opener rune) Token {
	if len(l.stack) == 0 || l.stack[len(l.stack)-1] != opener {
		return l.fail(ErrUnbalancedBrackets, "unexpected %q at offset %d", l.ch, l.pos)
	}
	l.stack = l.stack[:len(l.stack)-1]
	tok := Token{Type: t, Value: string(l.ch), Pos: l.pos, Depth: len(l.stack)}
	l.readChar()
	tok.End = l.pos
	return tok
}

// Err returns the error recorded by the last TokenError, if any
func (l *Lexer) Err() error {
	return l.err
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	if l.err != nil {
		return Token{Type: TokenError, Value: l.err.Error(), Pos: l.pos, End: l.pos}
	}
	l.skipWhitespace()

	start := l.pos
	depth := len(l.stack)
	emit := func(t TokenType, value string) Token {
		return Token{Type: t, Value: value, Pos: start, End: l.pos, Depth: depth}
	}

	switch l.ch {
	case 0:
		if l.pos < len(l.input) {
			return l.fail(ErrMalformedClause, "unexpected NUL at offset %d", l.pos)
		}
		if len(l.stack) > 0 {
			return l.fail(ErrUnbalancedBrackets, "%d unclosed bracket(s)", len(l.stack))
		}
		return emit(TokenEOF, "")
	case '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
		}
		return emit(TokenEqual, "==")
	case '!':
		if l.peekChar() != '=' {
			return l.fail(ErrMalformedClause, "unexpected '!' at offset %d", l.pos)
		}
		l.readChar()
		l.readChar()
		return emit(TokenNotEqual, "!=")
	case '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return emit(TokenLessEqual, "<=")
		}
		return emit(TokenLess, "<")
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return emit(TokenGreaterEqual, ">=")
		}
		return emit(TokenGreater, ">")
	case '"':
		s, ok := l.readString('"')
		if !ok {
			return l.fail(ErrUnbalancedBrackets, "unterminated string starting at offset %d", start)
		}
		return emit(TokenString, s)
	case '\'':
		s, ok := l.readString('\'')
		if !ok {
			return l.fail(ErrUnbalancedBrackets, "unterminated char starting at offset %d", start)
		}
		return emit(TokenChar, s)
	case '#':
		l.readChar()
		return emit(TokenNumber, l.readWord())
	case '$':
		l.readChar()
		digits := l.readNumber()
		if digits == "" {
			return l.fail(ErrMalformedClause, "index reference without index at offset %d", start)
		}
		return emit(TokenIndexRef, digits)
	case '*':
		l.readChar()
		return emit(TokenIdent, "*")
	case ',':
		l.readChar()
		return emit(TokenComma, ",")
	case '(':
		return l.open(TokenLeftParen)
	case '{':
		return l.open(TokenLeftBrace)
	case ')':
		return l.close(TokenRightParen, '(')
	case '}':
		return l.close(TokenRightBrace, '{')
	}

	if unicode.IsDigit(l.ch) || ((l.ch == '-' || l.ch == '+') && unicode.IsDigit(l.peekChar())) {
		return emit(TokenInt, l.readNumber())
	}
	if unicode.IsLetter(l.ch) || l.ch == '_' {
		value := l.readIdentifier()
		return emit(identifierType(value), value)
	}
	return l.fail(ErrMalformedClause, "unexpected %q at offset %d", l.ch, l.pos)
}

// Tokenize converts a command into tokens, excluding the final EOF token.
// Every bracket and quote must be balanced.
func Tokenize(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		switch tok.Type {
		case TokenError:
			return nil, lexer.Err()
		case TokenEOF:
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// StripComments removes // line comments and /* */ block comments that are
// not inside a quoted literal.
func StripComments(cmd string) (string, error) {
	var b strings.Builder
	b.Grow(len(cmd))

	var quote byte
	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		if quote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(cmd) {
				i++
				b.WriteByte(cmd[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '"' || c == '\'':
			quote = c
			b.WriteByte(c)
		case c == '/' && i+1 < len(cmd) && cmd[i+1] == '/':
			end := strings.IndexByte(cmd[i:], '\n')
			if end < 0 {
				i = len(cmd)
			} else {
				i += end - 1
			}
		case c == '/' && i+1 < len(cmd) && cmd[i+1] == '*':
			end := strings.Index(cmd[i+2:], "*/")
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated block comment at offset %d", ErrMalformedClause, i)
			}
			b.WriteByte(' ')
			i += end + 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// MatchBrace returns the index of the close character matching the open
// character at start. Pair characters inside quoted literals are ignored.
func MatchBrace(cmd string, start int, open, close byte) (int, error) {
	if start < 0 || start >= len(cmd) || cmd[start] != open {
		return -1, fmt.Errorf("%w: no %q at offset %d", ErrUnbalancedBrackets, open, start)
	}

	depth := 0
	var quote byte
	for i := start; i < len(cmd); i++ {
		c := cmd[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %q at offset %d is never closed", ErrUnbalancedBrackets, open, start)
}

// SplitParams splits a comma separated parameter list at top-level commas.
// Commas nested in (), {} or quoted literals do not split.
func SplitParams(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var params []string
	var stack []byte
	var quote byte
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '{':
			stack = append(stack, c)
		case ')', '}':
			want := byte('(')
			if c == '}' {
				want = '{'
			}
			if len(stack) == 0 || stack[len(stack)-1] != want {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrUnbalancedBrackets, c, i)
			}
			stack = stack[:len(stack)-1]
		case ',':
			if len(stack) == 0 {
				params = append(params, strings.TrimSpace(s[last:i]))
				last = i + 1
			}
		}
	}
	if quote != 0 || len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed bracket or quote in %q", ErrUnbalancedBrackets, s)
	}
	return append(params, strings.TrimSpace(s[last:])), nil
}

// SplitCall splits NAME(arg, ...) into the name and its parameters
func SplitCall(s string) (string, []string, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return "", nil, fmt.Errorf("%w: %q is not a function call", ErrMalformedClause, s)
	}
	end, err := MatchBrace(s, open, '(', ')')
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(s[end+1:]) != "" {
		return "", nil, fmt.Errorf("%w: unexpected text after %q", ErrMalformedClause, s[:end+1])
	}
	params, err := SplitParams(s[open+1 : end])
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(s[:open]), params, nil
}
