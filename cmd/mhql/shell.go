package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/mertcandav/MochaDB-sub001/output"
	"github.com/mertcandav/MochaDB-sub001/query"
)

const historyFile = ".mhql_history"

const shellHelp = `Commands end with RETURN or REMOVE and may span several lines.
  \tables          list tables
  \schema <table>  show the columns of a table
  \format <name>   switch the output format (json, jsonl, csv, table)
  \limit <n>       print at most n rows, 0 for all
  \help            show this help
  \quit            leave the shell
`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive MHQL shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.shell(cmd.OutOrStdout())
		},
	}
}

// session is the line-oriented state of the interactive shell
type session struct {
	app     *app
	out     io.Writer
	pending []string
}

// feed consumes one input line. It returns true when the session should end.
// A statement is executed once its last word is RETURN or REMOVE, and its
// errors are printed rather than returned.
func (s *session) feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(s.pending) == 0 && strings.HasPrefix(trimmed, `\`) {
		return s.meta(trimmed)
	}
	if trimmed == "" {
		return false
	}

	s.pending = append(s.pending, line)
	if !complete(trimmed) {
		return false
	}
	stmt := strings.Join(s.pending, "\n")
	s.pending = nil

	if err := s.app.run(s.out, stmt); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

// meta runs a backslash command
func (s *session) meta(line string) bool {
	fields := strings.Fields(line)
	var err error
	switch fields[0] {
	case `\q`, `\quit`:
		return true
	case `\h`, `\help`:
		fmt.Fprint(s.out, shellHelp)
	case `\tables`:
		err = s.app.listTables(s.out)
	case `\schema`:
		if len(fields) != 2 {
			err = errors.New(`usage: \schema <table>`)
		} else {
			err = s.app.showSchema(s.out, fields[1])
		}
	case `\format`:
		if len(fields) != 2 {
			err = errors.New(`usage: \format <name>`)
		} else if _, err = output.New(fields[1], s.out); err == nil {
			s.app.cfg.Format = fields[1]
		}
	case `\limit`:
		var n int
		if len(fields) != 2 {
			err = errors.New(`usage: \limit <n>`)
		} else if _, scanErr := fmt.Sscan(fields[1], &n); scanErr != nil || n < 0 {
			err = fmt.Errorf("invalid limit %q", fields[1])
		} else {
			s.app.cfg.Limit = n
		}
	default:
		err = fmt.Errorf("unknown command %s, try \\help", fields[0])
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

// complete reports whether a line ends a statement
func complete(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToUpper(fields[len(fields)-1])
	return last == "RETURN" || last == "REMOVE"
}

// completer suggests keywords for the last word of the line
func completer(line string) []string {
	start := strings.LastIndexAny(line, " \t\n{(,") + 1
	prefix := strings.ToUpper(line[start:])
	if prefix == "" {
		return nil
	}
	var out []string
	for _, kw := range query.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			out = append(out, line[:start]+kw)
		}
	}
	return out
}

// shell runs the interactive loop until EOF or \quit
func (a *app) shell(out io.Writer) error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)
	state.SetCompleter(completer)

	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, historyFile)
		if f, err := os.Open(history); err == nil {
			_, _ = state.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintf(out, "mhql shell on %s, \\help for help\n", a.cfg.DataDir)
	s := &session{app: a, out: out}
	for {
		prompt := "mhql> "
		if len(s.pending) > 0 {
			prompt = "  ... "
		}
		line, err := state.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			s.pending = nil
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			state.AppendHistory(line)
		}
		if s.feed(line) {
			break
		}
	}

	if history != "" {
		f, err := os.Create(history)
		if err != nil {
			a.logger.Warn("failed to save history", slog.String("path", history), slog.Any("error", err))
			return nil
		}
		defer f.Close()
		if _, err := state.WriteHistory(f); err != nil {
			a.logger.Warn("failed to save history", slog.String("path", history), slog.Any("error", err))
		}
	}
	return nil
}
