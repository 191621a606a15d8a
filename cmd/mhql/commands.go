package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mertcandav/MochaDB-sub001/output"
	"github.com/mertcandav/MochaDB-sub001/reader"
	"github.com/mertcandav/MochaDB-sub001/table"
)

func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query [command]",
		Short: "Run one MHQL command, read from stdin when no argument is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read command: %w", err)
				}
				text = string(data)
			}
			return a.run(cmd.OutOrStdout(), text)
		},
	}
}

func newTablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTables(cmd.OutOrStdout())
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show the columns of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showSchema(cmd.OutOrStdout(), args[0])
		},
	}
}

// run executes a command and prints its result. Commands that do not end
// with RETURN are only validated.
func (a *app) run(w io.Writer, text string) error {
	result, err := a.engine.Run(text)
	if err != nil {
		return err
	}
	return a.print(w, limit(result, a.cfg.Limit))
}

// listTables prints every table with its column and row count
func (a *app) listTables(w io.Writer) error {
	tables, err := a.source.Tables()
	if err != nil {
		return err
	}

	names := make([]table.Data, len(tables))
	columns := make([]table.Data, len(tables))
	rows := make([]table.Data, len(tables))
	for i, t := range tables {
		n := 0
		if len(t.Columns) > 0 {
			n = len(t.Columns[0].Data)
		}
		names[i] = table.MustData(table.String, t.Name)
		columns[i] = table.MustData(table.Int32, len(t.Columns))
		rows[i] = table.MustData(table.Int64, n)
	}
	return a.print(w, table.FromColumns([]table.Column{
		table.NewColumn("table", table.String, names...),
		table.NewColumn("columns", table.Int32, columns...),
		table.NewColumn("rows", table.Int64, rows...),
	}))
}

// showSchema prints the parquet schema of one table
func (a *app) showSchema(w io.Writer, name string) error {
	infos, err := a.source.Schema(name)
	if err != nil {
		return err
	}
	return a.print(w, schemaTable(infos))
}

func schemaTable(infos []reader.SchemaInfo) *table.TableResult {
	text := func(name string, get func(reader.SchemaInfo) string) table.Column {
		c := table.NewColumn(name, table.String)
		for _, info := range infos {
			c.Data = append(c.Data, table.MustData(table.String, get(info)))
		}
		return c
	}
	flag := func(name string, get func(reader.SchemaInfo) bool) table.Column {
		c := table.NewColumn(name, table.Boolean)
		for _, info := range infos {
			c.Data = append(c.Data, table.MustData(table.Boolean, get(info)))
		}
		return c
	}

	return table.FromColumns([]table.Column{
		text("name", func(i reader.SchemaInfo) string { return i.Name }),
		text("type", func(i reader.SchemaInfo) string { return i.Type }),
		text("data_type", func(i reader.SchemaInfo) string { return i.DataType }),
		text("physical_type", func(i reader.SchemaInfo) string { return i.PhysicalType }),
		text("logical_type", func(i reader.SchemaInfo) string { return i.LogicalType }),
		flag("required", func(i reader.SchemaInfo) bool { return i.Required }),
		flag("optional", func(i reader.SchemaInfo) bool { return i.Optional }),
		flag("repeated", func(i reader.SchemaInfo) bool { return i.Repeated }),
	})
}

func (a *app) print(w io.Writer, result *table.TableResult) error {
	formatter, err := output.New(a.cfg.Format, w)
	if err != nil {
		return err
	}
	if err := formatter.Format(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// limit keeps the first n rows, all rows when n is 0
func limit(result *table.TableResult, n int) *table.TableResult {
	if n <= 0 || result.NumRows() <= n {
		return result
	}
	return table.FromRows(result.Columns, result.Rows[:n])
}
