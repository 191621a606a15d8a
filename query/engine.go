package query

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// Source is the read-only column store commands execute against. Callers
// must serialize writes to the source with query execution.
type Source interface {
	// Tables returns every table with its columns
	Tables() ([]table.Table, error)
	// Columns returns the columns of one table, or an error wrapping
	// ErrUnknownTable
	Columns(name string) ([]table.Column, error)
}

// Observer receives execution events, typically to record metrics
type Observer interface {
	ObserveQuery(status string, elapsed time.Duration)
	ObserveClause(keyword string)
}

// Query status values reported to an Observer
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger, slog.Default() when unset
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver sets the observer notified of every query and clause
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// Engine executes MHQL commands against a Source
type Engine struct {
	source   Source
	logger   *slog.Logger
	observer Observer
}

// NewEngine creates an engine reading from src
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{source: src}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

func (e *Engine) context() *ExecutionContext {
	ctx := NewExecutionContext(e.source, e.logger)
	ctx.Observer = e.observer
	return ctx
}

// run parses cmd, checks its terminal and executes it. TerminalNone accepts
// any terminal.
func (e *Engine) run(cmd string, want Terminal) (*table.TableResult, error) {
	start := time.Now()
	parsed, err := Parse(cmd)
	var result *table.TableResult
	if err == nil {
		if want == TerminalNone {
			want = parsed.Terminal
			if want != TerminalReturn {
				want = TerminalRemove
			}
		}
		result, err = e.execute(parsed, want)
	}
	e.finish(cmd, start, result, err)
	return result, err
}

func (e *Engine) execute(parsed *Command, want Terminal) (*table.TableResult, error) {
	if parsed.Terminal != want {
		return nil, terminalError(parsed.Terminal, want)
	}
	if want == TerminalRemove {
		return nil, fmt.Errorf("%w: REMOVE is not executed by the query engine", ErrUnsupported)
	}
	return e.context().Execute(parsed)
}

// finish logs the outcome of a command and notifies the observer
func (e *Engine) finish(cmd string, start time.Time, result *table.TableResult, err error) {
	elapsed := time.Since(start)
	status := StatusOK
	if err != nil {
		status = StatusError
		e.logger.Warn("query failed", slog.String("query", excerpt(cmd)), slog.Any("error", err))
	} else if result != nil {
		e.logger.Debug("query executed",
			slog.String("query", excerpt(cmd)),
			slog.Int("rows", result.NumRows()),
			slog.Int("columns", len(result.Columns)),
			slog.Duration("elapsed", elapsed),
		)
	}
	if e.observer != nil {
		e.observer.ObserveQuery(status, elapsed)
	}
}

func terminalError(got, want Terminal) error {
	switch {
	case want == TerminalReturn:
		return fmt.Errorf("%w: command must end with RETURN", ErrNotReader)
	case got == TerminalReturn:
		return fmt.Errorf("%w: RETURN commands must be executed as readers", ErrNotReader)
	default:
		return fmt.Errorf("%w: command must end with a mutating keyword such as REMOVE", ErrUnsupported)
	}
}

// Query executes a command ending with RETURN and returns its table
func (e *Engine) Query(cmd string) (*table.TableResult, error) {
	return e.run(cmd, TerminalReturn)
}

// ExecuteReader executes a command ending with RETURN and returns an
// iterator over its rows
func (e *Engine) ExecuteReader(cmd string) (*Rows, error) {
	result, err := e.run(cmd, TerminalReturn)
	if err != nil {
		return nil, err
	}
	return &Rows{result: result}, nil
}

// ExecuteScalar returns the first cell of the first row. The boolean is
// false when the result has no cells.
func (e *Engine) ExecuteScalar(cmd string) (table.Data, bool, error) {
	result, err := e.run(cmd, TerminalReturn)
	if err != nil {
		return table.Data{}, false, err
	}
	if len(result.Rows) == 0 || len(result.Rows[0]) == 0 {
		return table.Data{}, false, nil
	}
	return result.Rows[0][0], true, nil
}

// Execute validates a mutating command. Mutations are not carried out by
// this engine, so a valid REMOVE command reports ErrUnsupported.
func (e *Engine) Execute(cmd string) error {
	_, err := e.run(cmd, TerminalRemove)
	return err
}

// Run parses cmd once and dispatches on its terminal: RETURN commands are
// executed as by Query, every other command is validated as by Execute.
func (e *Engine) Run(cmd string) (*table.TableResult, error) {
	return e.run(cmd, TerminalNone)
}

// Rows iterates over the rows of a result
type Rows struct {
	result *table.TableResult
	pos    int
}

// Next advances to the next row and reports whether one exists
func (r *Rows) Next() bool {
	if r.pos >= len(r.result.Rows) {
		return false
	}
	r.pos++
	return true
}

// Row returns the current row
func (r *Rows) Row() table.Row {
	if r.pos == 0 {
		return nil
	}
	return r.result.Rows[r.pos-1]
}

// Columns returns the result columns
func (r *Rows) Columns() []table.Column {
	return r.result.Columns
}

// Table returns the whole result
func (r *Rows) Table() *table.TableResult {
	return r.result
}

// All returns an iterator over the row index and row of every row
func (r *Rows) All() iter.Seq2[int, table.Row] {
	return func(yield func(int, table.Row) bool) {
		for i, row := range r.result.Rows {
			if !yield(i, row) {
				return
			}
		}
	}
}
