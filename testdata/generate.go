//go:build ignore

// generate writes the sample tables used to try the mhql CLI:
//
//	go run testdata/generate.go
//	mhql -d testdata shell
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

type Sale struct {
	ID     int64   `parquet:"id"`
	City   string  `parquet:"city"`
	Item   string  `parquet:"item"`
	Amount int32   `parquet:"amount"`
	Price  float64 `parquet:"price"`
	Paid   bool    `parquet:"paid"`
}

type Person struct {
	ID   [16]byte `parquet:"id,uuid"`
	Name string   `parquet:"name"`
	City string   `parquet:"city"`
	Age  int32    `parquet:"age"`
}

func write[T any](dir, name string, rows []T) {
	path := filepath.Join(dir, name+".parquet")
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("Generated %s with %d rows", path, len(rows))
}

func main() {
	dir := "testdata"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	write(dir, "sales", []Sale{
		{ID: 1, City: "Oslo", Item: "a", Amount: 3, Price: 9.5, Paid: true},
		{ID: 2, City: "Rome", Item: "b", Amount: 7, Price: 4.25, Paid: false},
		{ID: 3, City: "Oslo", Item: "c", Amount: 5, Price: 12, Paid: true},
		{ID: 4, City: "Lima", Item: "a", Amount: 1, Price: 3.75, Paid: true},
		{ID: 5, City: "Rome", Item: "c", Amount: 2, Price: 8, Paid: false},
	})

	write(dir, "people", []Person{
		{ID: uuid.New(), Name: "alice", City: "Oslo", Age: 30},
		{ID: uuid.New(), Name: "bob", City: "Rome", Age: 25},
		{ID: uuid.New(), Name: "charlie", City: "Lima", Age: 35},
		{ID: uuid.New(), Name: "diana", City: "Oslo", Age: 28},
	})
}
