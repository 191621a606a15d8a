package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type userRow struct {
	ID       int64   `parquet:"id"`
	Name     string  `parquet:"name"`
	Age      int32   `parquet:"age"`
	Score    float64 `parquet:"score"`
	Active   bool    `parquet:"active"`
	Nickname *string `parquet:"nickname,optional"`
}

type orderRow struct {
	OrderID int64   `parquet:"order_id"`
	City    string  `parquet:"city"`
	Amount  float64 `parquet:"amount"`
}

// writeParquet writes rows to dir/name and returns the file path
func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}

func sampleUsers() []userRow {
	nick := "ally"
	return []userRow{
		{ID: 1, Name: "Alice", Age: 30, Score: 95.5, Active: true, Nickname: &nick},
		{ID: 2, Name: "Bob", Age: 25, Score: 82.25, Active: false},
		{ID: 3, Name: "Charlie", Age: 35, Score: 88, Active: true},
	}
}

func sampleOrders() []orderRow {
	return []orderRow{
		{OrderID: 10, City: "A", Amount: 10},
		{OrderID: 11, City: "B", Amount: 5},
		{OrderID: 12, City: "A", Amount: 20},
	}
}
