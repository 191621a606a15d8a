package reader

import (
	"errors"
	"testing"

	"github.com/mertcandav/MochaDB-sub001/table"
)

func TestMemory(t *testing.T) {
	m := NewMemory(
		table.Table{Name: "a", Columns: []table.Column{
			table.NewColumn("x", table.Int32, table.MustData(table.Int32, 1)),
		}},
		table.Table{Name: "b"},
	)

	tables, err := m.Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	if len(tables) != 2 || tables[0].Name != "a" || tables[1].Name != "b" {
		t.Fatalf("Tables() = %+v, want a then b", tables)
	}

	cols, err := m.Columns("a")
	if err != nil {
		t.Fatalf("Columns(a) error = %v", err)
	}
	cols[0].Data[0] = table.MustData(table.Int32, 99)

	again, _ := m.Columns("a")
	if got := again[0].Data[0].String(); got != "1" {
		t.Errorf("stored cell changed through a returned copy: got %s, want 1", got)
	}

	if _, err := m.Columns("missing"); !errors.Is(err, table.ErrUnknownTable) {
		t.Errorf("Columns(missing) error = %v, want ErrUnknownTable", err)
	}
}

func TestMemory_AddTableReplaces(t *testing.T) {
	m := NewMemory(table.Table{Name: "a"})
	m.AddTable(table.Table{Name: "a", Columns: []table.Column{table.NewColumn("y", table.String)}})

	tables, _ := m.Tables()
	if len(tables) != 1 {
		t.Fatalf("Tables() returned %d tables, want 1", len(tables))
	}
	if len(tables[0].Columns) != 1 || tables[0].Columns[0].Name != "y" {
		t.Errorf("replaced table columns = %+v, want [y]", tables[0].Columns)
	}
}
