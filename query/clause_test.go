package query

import (
	"errors"
	"testing"
)

func TestExtractors(t *testing.T) {
	tests := []struct {
		name     string
		extract  func(string) (string, string, error)
		input    string
		wantBody string
		wantRest string
		wantErr  error
	}{
		{
			name:     "use up to from",
			extract:  ExtractUse,
			input:    "USE a, b FROM t RETURN",
			wantBody: "a, b",
			wantRest: "FROM t RETURN",
		},
		{
			name:     "lower case keywords",
			extract:  ExtractUse,
			input:    "use a from t return",
			wantBody: "a",
			wantRest: "from t return",
		},
		{
			name:     "keyword must be a whole word",
			extract:  ExtractUse,
			input:    "USE muster, returned FROM t RETURN",
			wantBody: "muster, returned",
			wantRest: "FROM t RETURN",
		},
		{
			name:     "must with conjuncts",
			extract:  ExtractMust,
			input:    "MUST a == #1 AND b == #2 ORDERBY a RETURN",
			wantBody: "a == #1 AND b == #2",
			wantRest: "ORDERBY a RETURN",
		},
		{
			name:     "keywords inside subquery are skipped",
			extract:  ExtractMust,
			input:    "MUST IN a {USE a FROM t ORDERBY a RETURN} RETURN",
			wantBody: "IN a {USE a FROM t ORDERBY a RETURN}",
			wantRest: "RETURN",
		},
		{
			name:     "keywords inside strings are skipped",
			extract:  ExtractMust,
			input:    `MUST a == "ORDERBY RETURN" RETURN`,
			wantBody: `a == "ORDERBY RETURN"`,
			wantRest: "RETURN",
		},
		{
			name:     "first occurrence wins",
			extract:  ExtractSubRow,
			input:    "SUBROW 2 SUBROW 3 RETURN",
			wantBody: "2",
			wantRest: "SUBROW 3 RETURN",
		},
		{
			name:     "body runs to end of input",
			extract:  ExtractGroupBy,
			input:    "GROUPBY city",
			wantBody: "city",
			wantRest: "",
		},
		{
			name:     "corderby without direction",
			extract:  ExtractCOrderBy,
			input:    "CORDERBY RETURN",
			wantBody: "",
			wantRest: "RETURN",
		},
		{name: "missing keyword", extract: ExtractOrderBy, input: "USE a MUST x == #1", wantErr: ErrMalformedClause},
		{name: "empty body", extract: ExtractSubRow, input: "SUBROW RETURN", wantErr: ErrMalformedClause},
		{name: "empty from", extract: ExtractFrom, input: "FROM MUST a == #1", wantErr: ErrMalformedClause},
		{name: "unbalanced", extract: ExtractDelRow, input: "DELROW (1 RETURN", wantErr: ErrUnbalancedBrackets},
		{name: "subcol", extract: ExtractSubCol, input: "SUBCOL 1, 2 DELCOL 1", wantBody: "1, 2", wantRest: "DELCOL 1"},
		{name: "delcol", extract: ExtractDelCol, input: "DELCOL 3 RETURN", wantBody: "3", wantRest: "RETURN"},
		{name: "addrow", extract: ExtractAddRow, input: "ADDROW 2 REMOVE", wantBody: "2", wantRest: "REMOVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, rest, err := tt.extract(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestExtractAs(t *testing.T) {
	tests := []struct {
		input     string
		wantExpr  string
		wantAlias string
		wantErr   bool
	}{
		{"amount", "amount", "", false},
		{"SUM(amount) AS total", "SUM(amount)", "total", false},
		{"amount as a", "amount", "a", false},
		{"amount AS", "", "", true},
		{"AS total", "", "", true},
		{"amount AS a b", "", "", true},
		{"amount AS *", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, alias, err := ExtractAs(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedClause) {
					t.Errorf("ExtractAs() error = %v, want ErrMalformedClause", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractAs() error = %v", err)
			}
			if expr != tt.wantExpr || alias != tt.wantAlias {
				t.Errorf("ExtractAs() = (%q, %q), want (%q, %q)", expr, alias, tt.wantExpr, tt.wantAlias)
			}
		})
	}
}

func TestSplitAnd(t *testing.T) {
	body := `a == #1 AND b CONTAINS "x AND y" AND IN c {USE c FROM t MUST d == #1 AND e == #2 RETURN}`
	got, err := SplitAnd(body)
	if err != nil {
		t.Fatalf("SplitAnd() error = %v", err)
	}
	want := []string{
		"a == #1",
		`b CONTAINS "x AND y"`,
		"IN c {USE c FROM t MUST d == #1 AND e == #2 RETURN}",
	}
	if len(got) != len(want) {
		t.Fatalf("SplitAnd() returned %d conjuncts, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("conjunct %d = %q, want %q", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"a == #1 AND", "AND a == #1", "a == #1 AND AND b == #2"} {
		if _, err := SplitAnd(bad); !errors.Is(err, ErrMalformedClause) {
			t.Errorf("SplitAnd(%q) error = %v, want ErrMalformedClause", bad, err)
		}
	}
}
