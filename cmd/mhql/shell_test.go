package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newTestSession prepares an app over dir the way the root command does
func newTestSession(t *testing.T, dir string) (*session, *bytes.Buffer) {
	t.Helper()
	a := &app{}
	cmd := &cobra.Command{}
	cmd.PersistentFlags().StringP("data-dir", "d", "", "")
	cmd.PersistentFlags().StringP("format", "f", "", "")
	cmd.PersistentFlags().Int("limit", 0, "")
	cmd.PersistentFlags().String("log-level", "", "")
	if err := cmd.ParseFlags([]string{"-d", dir, "-f", "csv"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	var out bytes.Buffer
	cmd.SetErr(&bytes.Buffer{})
	if err := a.setup(cmd, nil); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	return &session{app: a, out: &out}, &out
}

func TestSession_MultiLineStatement(t *testing.T) {
	s, out := newTestSession(t, createTestDir(t))

	for _, line := range []string{"USE city", "FROM sales", "MUST amount BIGGER #6"} {
		if s.feed(line) {
			t.Fatal("feed() should not quit")
		}
	}
	if out.Len() != 0 || len(s.pending) != 3 {
		t.Fatalf("statement executed early: %q", out.String())
	}
	s.feed("return")
	if out.String() != "city\nRome\n" {
		t.Errorf("output = %q", out.String())
	}
	if len(s.pending) != 0 {
		t.Error("pending lines should be cleared")
	}
}

func TestSession_ErrorsArePrinted(t *testing.T) {
	s, out := newTestSession(t, createTestDir(t))
	s.feed("USE * FROM nope RETURN")
	if !strings.HasPrefix(out.String(), "Error: unknown table") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSession_Meta(t *testing.T) {
	s, out := newTestSession(t, createTestDir(t))

	s.feed(`\tables`)
	if out.String() != "table,columns,rows\nsales,3,3\n" {
		t.Errorf(`\tables output = %q`, out.String())
	}

	out.Reset()
	s.feed(`\format jsonl`)
	s.feed(`\limit 1`)
	s.feed("USE city FROM sales RETURN")
	if out.String() != `{"city":"Oslo"}`+"\n" {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	s.feed(`\format xml`)
	s.feed(`\limit -3`)
	s.feed(`\schema`)
	s.feed(`\bogus`)
	if got := strings.Count(out.String(), "Error:"); got != 4 {
		t.Errorf("expected 4 errors, got %d:\n%s", got, out.String())
	}
	if s.app.cfg.Format != "jsonl" || s.app.cfg.Limit != 1 {
		t.Errorf("invalid meta commands changed settings: %+v", s.app.cfg)
	}

	out.Reset()
	s.feed(`\schema sales`)
	if !strings.Contains(out.String(), `"name":"city"`) {
		t.Errorf(`\schema output = %q`, out.String())
	}

	if !s.feed(`\q`) || !s.feed(`\quit`) {
		t.Error(`\q should end the session`)
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"USE * FROM t RETURN", true},
		{"use * from t return", true},
		{"USE * FROM t REMOVE", true},
		{"USE * FROM t", false},
		{"RETURNS", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := complete(tt.line); got != tt.want {
			t.Errorf("complete(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestCompleter(t *testing.T) {
	got := completer("USE * FROM t ORD")
	if len(got) != 1 || got[0] != "USE * FROM t ORDERBY" {
		t.Errorf("completer() = %v", got)
	}
	if got := completer("USE * FROM t MUST NOT"); len(got) != 2 {
		t.Errorf("completer() = %v, want NOTCONTAINS and NOTEQUAL", got)
	}
	if got := completer("USE "); got != nil {
		t.Errorf("completer() on empty word = %v", got)
	}
}
