package query

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mertcandav/MochaDB-sub001/reader"
	"github.com/mertcandav/MochaDB-sub001/table"
)

func strs(vals ...string) []table.Data {
	out := make([]table.Data, len(vals))
	for i, v := range vals {
		out[i] = table.MustData(table.String, v)
	}
	return out
}

func ints(vals ...int) []table.Data {
	out := make([]table.Data, len(vals))
	for i, v := range vals {
		out[i] = table.MustData(table.Int32, v)
	}
	return out
}

// newTestSource returns a catalog with four small tables:
//
//	sales:  city String, amount Int32, item Char, paid Boolean
//	people: name String, age Int32
//	cities: city String
//	ids:    id AutoInt, key Unique
func newTestSource() *reader.Memory {
	return reader.NewMemory(
		table.Table{Name: "sales", Columns: []table.Column{
			table.NewColumn("city", table.String, strs("A", "B", "A")...),
			table.NewColumn("amount", table.Int32, ints(10, 5, 20)...),
			table.NewColumn("item", table.Char,
				table.MustData(table.Char, 'x'), table.MustData(table.Char, 'y'), table.MustData(table.Char, 'z')),
			table.NewColumn("paid", table.Boolean,
				table.MustData(table.Boolean, true), table.MustData(table.Boolean, false), table.MustData(table.Boolean, true)),
		}},
		table.Table{Name: "people", Columns: []table.Column{
			table.NewColumn("name", table.String, strs("alice", "Bob", "carol")...),
			table.NewColumn("age", table.Int32, ints(30, 25, 35)...),
		}},
		table.Table{Name: "cities", Columns: []table.Column{
			table.NewColumn("city", table.String, strs("A", "C")...),
		}},
		table.Table{Name: "ids", Columns: []table.Column{
			table.NewColumn("id", table.AutoInt, table.MustData(table.AutoInt, 1), table.MustData(table.AutoInt, 2)),
			table.NewColumn("key", table.Unique, table.MustData(table.Unique, "k1"), table.MustData(table.Unique, "k2")),
		}},
	)
}

func newTestEngine() *Engine {
	return NewEngine(newTestSource())
}

// cells renders every row of a result as strings
func cells(res *table.TableResult) [][]string {
	out := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = make([]string, len(row))
		for j, d := range row {
			out[i][j] = d.String()
		}
	}
	return out
}

// assertRows fails unless the result holds exactly want, and its two views
// agree
func assertRows(t *testing.T, res *table.TableResult, want [][]string) {
	t.Helper()
	if err := res.Validate(); err != nil {
		t.Fatalf("inconsistent result: %v", err)
	}
	got := cells(res)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
}

func assertColumns(t *testing.T, res *table.TableResult, want ...string) {
	t.Helper()
	got := res.ColumnNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("columns = %v, want %v", got, want)
	}
}

func assertErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
}
