package reader

import (
	"testing"

	"github.com/mertcandav/MochaDB-sub001/table"
)

func TestReadColumns(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "users.parquet", sampleUsers())

	cols, err := ReadColumns(path)
	if err != nil {
		t.Fatalf("ReadColumns() error = %v", err)
	}

	wantNames := []string{"id", "name", "age", "score", "active", "nickname"}
	if len(cols) != len(wantNames) {
		t.Fatalf("ReadColumns() returned %d columns, want %d", len(cols), len(wantNames))
	}
	for i, name := range wantNames {
		if cols[i].Name != name {
			t.Errorf("column %d name = %q, want %q", i, cols[i].Name, name)
		}
		if len(cols[i].Data) != 3 {
			t.Errorf("column %s has %d cells, want 3", name, len(cols[i].Data))
		}
		if cols[i].Source != table.NoSource {
			t.Errorf("column %s Source = %d, want NoSource", name, cols[i].Source)
		}
	}

	tests := []struct {
		col  int
		row  int
		typ  table.DataType
		want string
	}{
		{0, 0, table.Int64, "1"},
		{1, 1, table.String, "Bob"},
		{2, 2, table.Int32, "35"},
		{3, 1, table.Double, "82.25"},
		{4, 0, table.Boolean, "True"},
		{4, 1, table.Boolean, "False"},
		{5, 0, table.String, "ally"},
		{5, 1, table.String, ""},
	}
	for _, tt := range tests {
		got := cols[tt.col].Data[tt.row]
		if got.Type != tt.typ {
			t.Errorf("cell (%d,%d) type = %v, want %v", tt.col, tt.row, got.Type, tt.typ)
		}
		if got.String() != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.col, tt.row, got.String(), tt.want)
		}
	}
}

func TestReadColumns_MissingFile(t *testing.T) {
	if _, err := ReadColumns("does-not-exist.parquet"); err == nil {
		t.Error("ReadColumns() expected error for missing file")
	}
}

func TestReader_CloseTwice(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "users.parquet", sampleUsers())

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}
