package query

import (
	"errors"
	"strings"
	"testing"
)

func TestLexer_NextToken(t *testing.T) {
	input := `USE a, t.b FROM t MUST x == #5.5 AND c != 'q' AND $2 >= -3 AND IN y {USE y RETURN} RETURN`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
		expectedDepth int
	}{
		{TokenUse, "USE", 0},
		{TokenIdent, "a", 0},
		{TokenComma, ",", 0},
		{TokenIdent, "t.b", 0},
		{TokenFrom, "FROM", 0},
		{TokenIdent, "t", 0},
		{TokenMust, "MUST", 0},
		{TokenIdent, "x", 0},
		{TokenEqual, "==", 0},
		{TokenNumber, "5.5", 0},
		{TokenAnd, "AND", 0},
		{TokenIdent, "c", 0},
		{TokenNotEqual, "!=", 0},
		{TokenChar, "q", 0},
		{TokenAnd, "AND", 0},
		{TokenIndexRef, "2", 0},
		{TokenGreaterEqual, ">=", 0},
		{TokenInt, "-3", 0},
		{TokenAnd, "AND", 0},
		{TokenIn, "IN", 0},
		{TokenIdent, "y", 0},
		{TokenLeftBrace, "{", 0},
		{TokenUse, "USE", 1},
		{TokenIdent, "y", 1},
		{TokenReturn, "RETURN", 1},
		{TokenRightBrace, "}", 0},
		{TokenReturn, "RETURN", 0},
		{TokenEOF, "", 0},
	}

	lexer := NewLexer(input)
	for i, tt := range tests {
		tok := lexer.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - token type wrong. expected=%v, got=%v (%q)", i, tt.expectedType, tok.Type, tok.Value)
		}
		if tok.Value != tt.expectedValue {
			t.Fatalf("tests[%d] - value wrong. expected=%q, got=%q", i, tt.expectedValue, tok.Value)
		}
		if tok.Depth != tt.expectedDepth {
			t.Fatalf("tests[%d] - depth wrong. expected=%d, got=%d", i, tt.expectedDepth, tok.Depth)
		}
	}
}

func TestLexer_CaseInsensitiveKeywords(t *testing.T) {
	tokens, err := Tokenize("use x from t must x between #1, #2 return")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []TokenType{TokenUse, TokenIdent, TokenFrom, TokenIdent, TokenMust, TokenIdent, TokenFunction, TokenNumber, TokenComma, TokenNumber, TokenReturn}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize() returned %d tokens, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i].Type != want[i] {
			t.Errorf("token %d type = %v, want %v", i, tokens[i].Type, want[i])
		}
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	tokens, err := Tokenize(`"say \"hi\"" 'x'`)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("Tokenize() returned %d tokens, want 2", len(tokens))
	}
	if tokens[0].Type != TokenString || tokens[0].Value != `say "hi"` {
		t.Errorf("string token = %v %q", tokens[0].Type, tokens[0].Value)
	}
	if tokens[1].Type != TokenChar || tokens[1].Value != "x" {
		t.Errorf("char token = %v %q", tokens[1].Type, tokens[1].Value)
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unclosed paren", "USE SUM(a FROM t", ErrUnbalancedBrackets},
		{"unclosed brace", "MUST IN a {USE a RETURN", ErrUnbalancedBrackets},
		{"stray close", "USE a) RETURN", ErrUnbalancedBrackets},
		{"crossed brackets", "({)}", ErrUnbalancedBrackets},
		{"unterminated string", `MUST a == "abc`, ErrUnbalancedBrackets},
		{"unterminated char", `MUST a == 'b`, ErrUnbalancedBrackets},
		{"bad character", "USE a @ b", ErrMalformedClause},
		{"lone bang", "MUST a ! b", ErrMalformedClause},
		{"empty index", "USE $ FROM t", ErrMalformedClause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Tokenize(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"no comments", "USE a RETURN", "USE a RETURN", false},
		{"line comment", "USE a // pick a\nRETURN", "USE a \nRETURN", false},
		{"line comment at end", "USE a RETURN // done", "USE a RETURN ", false},
		{"block comment", "USE /* x */ a", "USE   a", false},
		{"comment marker in string", `MUST a == "//x" RETURN`, `MUST a == "//x" RETURN`, false},
		{"block marker in char", `MUST a == '/' AND b == #1`, `MUST a == '/' AND b == #1`, false},
		{"unterminated block", "USE a /* open", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripComments(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedClause) {
					t.Errorf("StripComments() error = %v, want ErrMalformedClause", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StripComments() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("StripComments() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchBrace(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		start   int
		open    byte
		close   byte
		want    int
		wantErr bool
	}{
		{"flat", "{abc}", 0, '{', '}', 4, false},
		{"nested", "{a{b}c}", 0, '{', '}', 6, false},
		{"inner", "{a{b}c}", 2, '{', '}', 4, false},
		{"close inside string", `{"}"}`, 0, '{', '}', 4, false},
		{"escaped quote inside char", `{'\}'}`, 0, '{', '}', 5, false},
		{"parens", "SUM(a(b))", 3, '(', ')', 8, false},
		{"never closed", "{a{b}", 0, '{', '}', -1, true},
		{"start is not an opener", "a{b}", 0, '{', '}', -1, true},
		{"start out of range", "{}", 5, '{', '}', -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchBrace(tt.input, tt.start, tt.open, tt.close)
			if tt.wantErr {
				if !errors.Is(err, ErrUnbalancedBrackets) {
					t.Errorf("MatchBrace() error = %v, want ErrUnbalancedBrackets", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MatchBrace() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MatchBrace() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplitParams(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"empty", "  ", nil, false},
		{"single", "a", []string{"a"}, false},
		{"nested and quoted", `a, (b,c), "x,y"`, []string{"a", "(b,c)", `"x,y"`}, false},
		{"braces", "a,{USE b, c RETURN}", []string{"a", "{USE b, c RETURN}"}, false},
		{"empty middle", "a,,b", []string{"a", "", "b"}, false},
		{"unclosed", "a, (b", nil, true},
		{"unclosed quote", `a, "b`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitParams(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnbalancedBrackets) {
					t.Errorf("SplitParams() error = %v, want ErrUnbalancedBrackets", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitParams() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("SplitParams() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitCall(t *testing.T) {
	name, params, err := SplitCall("BETWEEN(age, #1, #5)")
	if err != nil {
		t.Fatalf("SplitCall() error = %v", err)
	}
	if name != "BETWEEN" || strings.Join(params, "|") != "age|#1|#5" {
		t.Errorf("SplitCall() = %q %q", name, params)
	}

	if _, _, err := SplitCall("COUNT(*) x"); !errors.Is(err, ErrMalformedClause) {
		t.Errorf("SplitCall() trailing text error = %v, want ErrMalformedClause", err)
	}
	if _, _, err := SplitCall("(a)"); !errors.Is(err, ErrMalformedClause) {
		t.Errorf("SplitCall() missing name error = %v, want ErrMalformedClause", err)
	}
}

func TestKeywords(t *testing.T) {
	words := Keywords()
	if len(words) != len(keywords) {
		t.Fatalf("Keywords() returned %d words, want %d", len(words), len(keywords))
	}
	for i := 1; i < len(words); i++ {
		if words[i-1] >= words[i] {
			t.Errorf("Keywords() not sorted at %d: %q >= %q", i, words[i-1], words[i])
		}
	}
	for _, w := range words {
		if identifierType(strings.ToLower(w)) == TokenIdent {
			t.Errorf("%q is not recognised as a keyword", w)
		}
	}
}
