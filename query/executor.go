package query

import (
	"fmt"
	"log/slog"

	"github.com/mertcandav/MochaDB-sub001/table"
)

// ExecutionContext holds the context for command execution
type ExecutionContext struct {
	// Source provides the tables commands read from
	Source Source
	// Logger receives clause level debug output
	Logger *slog.Logger
	// Observer is notified of every executed clause, may be nil
	Observer Observer
	// Depth is the subquery nesting level, 0 for the outermost command
	Depth int
}

// NewExecutionContext creates a new execution context
func NewExecutionContext(src Source, logger *slog.Logger) *ExecutionContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecutionContext{Source: src, Logger: logger}
}

// NewChildContext creates the context a nested subquery runs in. Subqueries
// execute synchronously on the same source.
func (ctx *ExecutionContext) NewChildContext() *ExecutionContext {
	return &ExecutionContext{
		Source:   ctx.Source,
		Logger:   ctx.Logger,
		Observer: ctx.Observer,
		Depth:    ctx.Depth + 1,
	}
}

// Run parses and executes a command that must end with RETURN
func (ctx *ExecutionContext) Run(text string) (*table.TableResult, error) {
	cmd, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if cmd.Terminal != TerminalReturn {
		return nil, fmt.Errorf("%w: subquery must end with RETURN", ErrNotReader)
	}
	return ctx.Execute(cmd)
}

// Execute runs a parsed command. Every clause produces a new table, so the
// source and earlier results are never modified.
func (ctx *ExecutionContext) Execute(cmd *Command) (*table.TableResult, error) {
	if len(cmd.Clauses) == 0 {
		return nil, fmt.Errorf("%w: missing USE clause", ErrMalformedClause)
	}
	use, ok := cmd.Clauses[0].(*UseClause)
	if !ok {
		return nil, fmt.Errorf("%w: command must start with USE, got %s", ErrMalformedClause, cmd.Clauses[0].Keyword())
	}

	ctx.trace(use, 0)
	w, err := ctx.applyUse(use)
	if err != nil {
		return nil, err
	}

	for _, clause := range cmd.Clauses[1:] {
		ctx.trace(clause, w.result.NumRows())

		var result *table.TableResult
		switch c := clause.(type) {
		case *MustClause:
			result, err = ctx.applyMust(w, c)
		case *GroupByClause:
			result, err = ctx.applyGroupBy(w, c)
		case *OrderByClause:
			result, err = ctx.applyOrderBy(w, c)
		default:
			if _, err = ctx.materialize(w); err != nil {
				return nil, err
			}
			result, err = applyReshape(w.result, clause)
		}
		if err != nil {
			return nil, err
		}
		w.result = result
	}

	return ctx.materialize(w)
}

func (ctx *ExecutionContext) trace(clause Clause, rows int) {
	if ctx.Observer != nil {
		ctx.Observer.ObserveClause(clause.Keyword().String())
	}
	ctx.Logger.Debug("applying clause",
		slog.String("keyword", clause.Keyword().String()),
		slog.Int("rows", rows),
		slog.Int("depth", ctx.Depth),
	)
}
